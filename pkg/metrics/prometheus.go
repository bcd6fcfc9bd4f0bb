// Package metrics provides Prometheus metrics for classification runs.
//
// Runs are short-lived batch jobs, so metrics are collected on a private
// registry and written once per run with WriteTextfile for the node exporter
// textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Duplicate name kinds.
const (
	DuplicateExact   = "exact"
	DuplicateSimilar = "similar"
)

// Manager manages all Prometheus metrics of a run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	eventsScored       *prometheus.CounterVec
	participantsScored *prometheus.CounterVec
	eventsPending      prometheus.Counter
	scoringLatency     prometheus.Histogram

	standingSize   *prometheus.GaugeVec
	duplicateNames *prometheus.CounterVec
	workerCount    prometheus.Gauge

	classificationErrors *prometheus.CounterVec
	runDuration          prometheus.Gauge
	runLastSuccessUnix   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rbr",
		subsystem:        "classification",
		histogramBuckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.eventsScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_scored_total",
		Help:        "Event tables scored, by division",
		ConstLabels: labels,
	}, []string{"division"})

	m.participantsScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "participants_scored_total",
		Help:        "Participant results scored across all events, by division",
		ConstLabels: labels,
	}, []string{"division"})

	m.eventsPending = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_pending_total",
		Help:        "Events skipped because their export has no cleanup rule yet",
		ConstLabels: labels,
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "event_scoring_latency_milliseconds",
		Help:        "Time to read, clean and score one event",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.standingSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "standing_participants",
		Help:        "Participants in the final standing, by division",
		ConstLabels: labels,
	}, []string{"division"})

	m.duplicateNames = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicate_names_total",
		Help:        "Names flagged as possible duplicates, by kind (exact, similar)",
		ConstLabels: labels,
	}, []string{"kind"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_count",
		Help:        "Events scored in parallel",
		ConstLabels: labels,
	})

	m.classificationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Failed runs, by stage (roster, read, clean, score, aggregate, export)",
		ConstLabels: labels,
	}, []string{"stage"})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_seconds",
		Help:        "Duration of the last successful run",
		ConstLabels: labels,
	})

	m.runLastSuccessUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_last_success_unix",
		Help:        "Unix timestamp of the last successful run",
		ConstLabels: labels,
	})
}

// RecordEventScored counts one scored event table and its participants.
func (m *Manager) RecordEventScored(division string, participants int) {
	if !m.enabled {
		return
	}
	m.eventsScored.WithLabelValues(division).Inc()
	m.participantsScored.WithLabelValues(division).Add(float64(participants))
}

// RecordEventPending counts an event without a cleanup rule.
func (m *Manager) RecordEventPending() {
	if !m.enabled {
		return
	}
	m.eventsPending.Inc()
}

// RecordScoringLatency records how long one event took.
func (m *Manager) RecordScoringLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.scoringLatency.Observe(latencyMs)
}

// UpdateStandingSize sets the size of a division's standing.
func (m *Manager) UpdateStandingSize(division string, n int) {
	if !m.enabled {
		return
	}
	m.standingSize.WithLabelValues(division).Set(float64(n))
}

// RecordDuplicateName counts a flagged name.
func (m *Manager) RecordDuplicateName(kind string) {
	if !m.enabled {
		return
	}
	m.duplicateNames.WithLabelValues(kind).Inc()
}

// UpdateWorkerCount sets the scoring parallelism.
func (m *Manager) UpdateWorkerCount(n int) {
	if !m.enabled {
		return
	}
	m.workerCount.Set(float64(n))
}

// RecordClassificationError counts a failed run at stage.
func (m *Manager) RecordClassificationError(stage string) {
	if !m.enabled {
		return
	}
	m.classificationErrors.WithLabelValues(stage).Inc()
}

// RecordRunCompleted stores the duration and completion time of a run.
func (m *Manager) RecordRunCompleted(took time.Duration, at time.Time) {
	if !m.enabled {
		return
	}
	m.runDuration.Set(took.Seconds())
	m.runLastSuccessUnix.Set(float64(at.Unix()))
}

// Package-level helpers delegate to the global manager.

// RecordEventScored counts one scored event table and its participants.
func RecordEventScored(division string, participants int) {
	globalManager.RecordEventScored(division, participants)
}

// RecordEventPending counts an event without a cleanup rule.
func RecordEventPending() { globalManager.RecordEventPending() }

// RecordScoringLatency records how long one event took.
func RecordScoringLatency(latencyMs float64) { globalManager.RecordScoringLatency(latencyMs) }

// UpdateStandingSize sets the size of a division's standing.
func UpdateStandingSize(division string, n int) { globalManager.UpdateStandingSize(division, n) }

// RecordDuplicateName counts a flagged name.
func RecordDuplicateName(kind string) { globalManager.RecordDuplicateName(kind) }

// UpdateWorkerCount sets the scoring parallelism.
func UpdateWorkerCount(n int) { globalManager.UpdateWorkerCount(n) }

// RecordClassificationError counts a failed run at stage.
func RecordClassificationError(stage string) { globalManager.RecordClassificationError(stage) }

// RecordRunCompleted stores the duration and completion time of a run.
func RecordRunCompleted(took time.Duration) { globalManager.RecordRunCompleted(took, time.Now()) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the custom registry to path in the text exposition
// format. The file is replaced atomically.
func WriteTextfile(path string) error {
	return writeTextfile(path, customRegistry)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	return nil
}
