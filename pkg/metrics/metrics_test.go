package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry), WithCustomLabels(map[string]string{"season": "2024"}))

		Convey("When events are scored", func() {
			m.RecordEventScored("men", 120)
			m.RecordEventScored("men", 80)
			m.RecordEventScored("women", 60)
			m.RecordEventPending()

			Convey("Then counters accumulate per division", func() {
				So(testutil.ToFloat64(m.eventsScored.WithLabelValues("men")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.participantsScored.WithLabelValues("men")), ShouldEqual, 200)
				So(testutil.ToFloat64(m.participantsScored.WithLabelValues("women")), ShouldEqual, 60)
				So(testutil.ToFloat64(m.eventsPending), ShouldEqual, 1)
			})
		})

		Convey("When standings and duplicates are recorded", func() {
			m.UpdateStandingSize("overall", 42)
			m.RecordDuplicateName(DuplicateExact)
			m.RecordDuplicateName(DuplicateSimilar)
			m.RecordDuplicateName(DuplicateSimilar)
			m.UpdateWorkerCount(4)

			Convey("Then gauges and counters reflect them", func() {
				So(testutil.ToFloat64(m.standingSize.WithLabelValues("overall")), ShouldEqual, 42)
				So(testutil.ToFloat64(m.duplicateNames.WithLabelValues(DuplicateSimilar)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.workerCount), ShouldEqual, 4)
			})
		})

		Convey("When a run completes", func() {
			at := time.Unix(1_700_000_000, 0)
			m.RecordRunCompleted(1500*time.Millisecond, at)
			m.RecordScoringLatency(12)

			Convey("Then its duration and time are kept", func() {
				So(testutil.ToFloat64(m.runDuration), ShouldEqual, 1.5)
				So(testutil.ToFloat64(m.runLastSuccessUnix), ShouldEqual, 1_700_000_000)
				So(testutil.CollectAndCount(m.scoringLatency), ShouldEqual, 1)
			})
		})

		Convey("When an error is recorded", func() {
			m.RecordClassificationError("clean")

			Convey("Then it is exposed with the namespace and constant labels", func() {
				expected := `
# HELP rbr_classification_errors_total Failed runs, by stage (roster, read, clean, score, aggregate, export)
# TYPE rbr_classification_errors_total counter
rbr_classification_errors_total{season="2024",stage="clean"} 1
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "rbr_classification_errors_total")
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
		m.RecordEventScored("men", 10)
		m.RecordClassificationError("read")

		Convey("Then nothing is recorded", func() {
			So(testutil.ToFloat64(m.eventsScored.WithLabelValues("men")), ShouldEqual, 0)
			So(testutil.ToFloat64(m.classificationErrors.WithLabelValues("read")), ShouldEqual, 0)
		})
	})

	Convey("Given custom naming options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(registry),
			WithNamespace("series"),
			WithSubsystem("run"),
			WithHistogramBuckets([]float64{1, 10}),
		)
		m.UpdateWorkerCount(2)

		Convey("Then metric names follow them", func() {
			n, err := testutil.GatherAndCount(registry, "series_run_worker_count")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given the global registry", t, func() {
		UpdateWorkerCount(3)
		RecordEventScored("overall", 5)
		path := filepath.Join(t.TempDir(), "rbr.prom")

		Convey("When it is written to a textfile", func() {
			err := WriteTextfile(path)

			Convey("Then the file holds the exposition", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "rbr_classification_worker_count 3")
				So(string(data), ShouldContainSubstring, `rbr_classification_events_scored_total{division="overall"}`)
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "rbr.prom"))

			Convey("Then a write error is returned", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})
	})

	Convey("Given the package helpers", t, func() {
		So(GetRegistry(), ShouldNotBeNil)
		RecordEventPending()
		RecordScoringLatency(3)
		UpdateStandingSize("men", 1)
		RecordDuplicateName(DuplicateExact)
		RecordClassificationError("score")
		RecordRunCompleted(time.Second)
	})
}
