// Package service runs a season classification: every event is read,
// cleaned and scored, then the event tables are folded into one standing per
// division.
package service

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/rbrseries/internal/adapters/cleanup"
	"github.com/okian/rbrseries/internal/adapters/reader"
	"github.com/okian/rbrseries/internal/adapters/repository"
	"github.com/okian/rbrseries/internal/domain/dedupe"
	"github.com/okian/rbrseries/internal/domain/model"
	"github.com/okian/rbrseries/internal/domain/scoring"
	"github.com/okian/rbrseries/internal/domain/standings"
	"github.com/okian/rbrseries/internal/season"
	"github.com/okian/rbrseries/pkg/logger"
	"github.com/okian/rbrseries/pkg/metrics"
)

// Stages reported with classification errors.
const (
	stageRoster    = "roster"
	stageRead      = "read"
	stageClean     = "clean"
	stageScore     = "score"
	stageAggregate = "aggregate"
)

// divisionOrder is the order standings are reported in.
var divisionOrder = []model.Division{ //nolint:gochecknoglobals // fixed ordering table
	model.DivisionOverall,
	model.DivisionMen,
	model.DivisionWomen,
}

// Service classifies seasons. It holds no per-run state and may be shared.
type Service struct {
	logger   logger.Logger
	files    *reader.Factory
	cleaners *cleanup.Registry
	scorer   scoring.Scorer

	bestOf       int
	bonus        standings.BonusTable
	workerCount  int
	nameDistance int
	strictNames  bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBestOf sets how many event scores count toward a total. A season
// manifest may still override it.
func WithBestOf(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.bestOf = k
		}
	}
}

// WithBonus replaces the participation bonus table.
func WithBonus(b map[int]int) Option {
	return func(s *Service) {
		if b != nil {
			s.bonus = standings.BonusTable(b).Clone()
		}
	}
}

// WithWorkerCount sets how many events are processed at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithNameDistance sets the edit distance under which two names in a
// standing are reported as look-alikes. Zero disables the check.
func WithNameDistance(d int) Option {
	return func(s *Service) {
		if d >= 0 {
			s.nameDistance = d
		}
	}
}

// WithStrictNames makes a repeated name within one event fatal instead of a
// warning.
func WithStrictNames(strict bool) Option {
	return func(s *Service) {
		s.strictNames = strict
	}
}

// WithCurve scores events with a custom points curve.
func WithCurve(c scoring.Curve) Option {
	return func(s *Service) {
		s.scorer = scoring.NewEventScorer(scoring.WithCurve(c))
	}
}

// WithScorer replaces the event scorer.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithRegistry replaces the cleanup registry, e.g. to add a handler.
func WithRegistry(r *cleanup.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.cleaners = r
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		files:        reader.NewFactory(),
		cleaners:     cleanup.NewRegistry(),
		scorer:       scoring.NewEventScorer(),
		bestOf:       3,
		bonus:        standings.DefaultBonus(),
		workerCount:  runtime.NumCPU(),
		nameDistance: 1,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("classification")
	}
	return s
}

// eventOutcome is what one event contributes to a run.
type eventOutcome struct {
	info     EventInfo
	tables   map[model.Division]model.EventTable
	warnings []string
}

// Classify runs the whole season. Events are processed in parallel; the
// first failure cancels the rest and no classification is returned.
func (s *Service) Classify(ctx context.Context, m *season.Manifest) (*Classification, error) {
	if m == nil {
		return nil, ErrNilManifest
	}

	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run", runID), logger.Int("year", m.Year))
	log.Info(ctx, "classification started",
		logger.Int("events", len(m.Events)),
		logger.Int("workers", s.workerCount),
	)
	metrics.UpdateWorkerCount(s.workerCount)

	groups, err := s.loadAgeGroups(ctx, m, log)
	if err != nil {
		metrics.RecordClassificationError(stageRoster)
		return nil, err
	}

	outcomes, err := s.processEvents(ctx, m, log)
	if err != nil {
		log.Error(ctx, "classification aborted", logger.Error(err))
		return nil, err
	}

	c := &Classification{RunID: runID, Year: m.Year, Name: m.Name}
	for _, o := range outcomes {
		c.Events = append(c.Events, o.info)
		c.Warnings = append(c.Warnings, o.warnings...)
	}

	bestOf := s.bestOf
	if m.BestOf > 0 {
		bestOf = m.BestOf
	}
	agg := standings.NewAggregator(
		standings.WithBestOf(bestOf),
		standings.WithBonus(s.bonus),
		standings.WithAgeGroups(groups),
	)

	for _, d := range divisionsOf(outcomes) {
		if !m.Wants(d) {
			continue
		}
		st, err := standing(ctx, agg, d, outcomes)
		if err != nil {
			metrics.RecordClassificationError(stageAggregate)
			log.Error(ctx, "classification aborted", logger.Error(err))
			return nil, err
		}
		metrics.UpdateStandingSize(string(d), len(st.Records))
		c.Standings = append(c.Standings, st)
	}

	c.Warnings = append(c.Warnings, s.similarNames(ctx, log, c.Standings)...)

	took := time.Since(start)
	metrics.RecordRunCompleted(took)
	log.Info(ctx, "classification finished",
		logger.Int("standings", len(c.Standings)),
		logger.Int("warnings", len(c.Warnings)),
		logger.Duration("took", took),
	)
	return c, nil
}

// ScoreEvent runs a single event through reading, cleaning and scoring.
func (s *Service) ScoreEvent(ctx context.Context, m *season.Manifest, eventID string) (map[model.Division]model.EventTable, error) {
	if m == nil {
		return nil, ErrNilManifest
	}
	e, err := m.Event(eventID)
	if err != nil {
		return nil, err
	}
	o, err := s.processEvent(ctx, m, e, s.logger)
	if err != nil {
		return nil, err
	}
	return o.tables, nil
}

func (s *Service) processEvents(ctx context.Context, m *season.Manifest, log logger.Logger) ([]eventOutcome, error) {
	outcomes := make([]eventOutcome, len(m.Events))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for i, e := range m.Events {
		g.Go(func() error {
			o, err := s.processEvent(gctx, m, e, log)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *Service) processEvent(ctx context.Context, m *season.Manifest, e season.Event, log logger.Logger) (eventOutcome, error) {
	log = log.With(logger.String("event", e.ID))
	out := eventOutcome{
		info: EventInfo{
			ID:           e.ID,
			Name:         e.DisplayName(),
			Format:       e.Format,
			Participants: make(map[model.Division]int),
		},
		tables: make(map[model.Division]model.EventTable),
	}

	in, err := s.input(ctx, m, e)
	if err != nil {
		metrics.RecordClassificationError(stageRead)
		return out, err
	}
	res, err := s.cleaners.Clean(ctx, e.Format, in)
	if err != nil {
		metrics.RecordClassificationError(stageClean)
		return out, err
	}
	for _, w := range res.Warnings {
		log.Warn(ctx, w)
		out.warnings = append(out.warnings, fmt.Sprintf("%s: %s", e.ID, w))
	}
	if e.Format == cleanup.FormatPending {
		metrics.RecordEventPending()
	}

	for _, d := range res.DivisionList() {
		results, repeated := uniqueNames(ctx, res.Divisions[d])
		if len(repeated) > 0 {
			if s.strictNames {
				metrics.RecordClassificationError(stageClean)
				return out, fmt.Errorf("%w: event %s (%s): %s", ErrDuplicateName, e.ID, d, strings.Join(repeated, ", "))
			}
			for _, name := range repeated {
				metrics.RecordDuplicateName(metrics.DuplicateExact)
				log.Warn(ctx, "repeated name dropped", logger.String("division", string(d)), logger.String("name", name))
				out.warnings = append(out.warnings, fmt.Sprintf("%s (%s): repeated name %q, kept first row", e.ID, d, name))
			}
		}
		if len(results) == 0 {
			continue
		}

		began := time.Now()
		table, err := s.scorer.Score(ctx, e.ID, results)
		if err != nil {
			metrics.RecordClassificationError(stageScore)
			return out, fmt.Errorf("score event %s (%s): %w", e.ID, d, err)
		}
		metrics.RecordScoringLatency(float64(time.Since(began).Microseconds()) / 1000)
		metrics.RecordEventScored(string(d), table.Len())

		out.tables[d] = table
		out.info.Participants[d] = table.Len()
	}

	log.Debug(ctx, "event scored", logger.Any("participants", out.info.Participants))
	return out, nil
}

// input reads the event's exports. Pending events have nothing to read.
func (s *Service) input(ctx context.Context, m *season.Manifest, e season.Event) (cleanup.Input, error) {
	in := cleanup.Input{
		EventID:    e.ID,
		Name:       e.DisplayName(),
		Year:       m.Year,
		HeaderRow:  e.HeaderIndex(),
		FooterRows: e.FooterRows,
		Columns:    e.Columns(),
		Categories: e.CleanupCategories(),
	}
	if e.Format == cleanup.FormatPending {
		return in, nil
	}

	var err error
	if in.All, err = s.read(ctx, m, e.Files.All, e.Sheet); err != nil {
		return in, err
	}
	if in.Men, err = s.read(ctx, m, e.Files.Men, e.Sheet); err != nil {
		return in, err
	}
	if in.Women, err = s.read(ctx, m, e.Files.Women, e.Sheet); err != nil {
		return in, err
	}
	return in, nil
}

func (s *Service) read(ctx context.Context, m *season.Manifest, file, sheet string) (*reader.Table, error) {
	if file == "" {
		return nil, nil //nolint:nilnil // an unset file is not an error
	}
	t, err := s.files.Read(ctx, m.Resolve(file), reader.WithSheet(sheet))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return t, nil
}

func (s *Service) loadAgeGroups(ctx context.Context, m *season.Manifest, log logger.Logger) (standings.AgeGroupLookup, error) {
	src := m.AgeGroups
	if src == nil {
		return nil, nil //nolint:nilnil // age groups are optional
	}
	t, err := s.read(ctx, m, src.File, src.Sheet)
	if err != nil {
		return nil, fmt.Errorf("age groups: %w", err)
	}
	roster := repository.NewRoster(
		repository.WithNameColumn(src.NameColumn),
		repository.WithGroupColumn(src.GroupColumn),
	)
	if err := roster.Load(ctx, t); err != nil {
		return nil, fmt.Errorf("age groups: %w", err)
	}
	log.Info(ctx, "age groups loaded", logger.Int("participants", roster.Count(ctx)))
	return roster, nil
}

// similarNames reports look-alike names within each standing. Names are
// never merged.
func (s *Service) similarNames(ctx context.Context, log logger.Logger, sts []Standing) []string {
	if s.nameDistance < 1 {
		return nil
	}
	var warnings []string
	for _, st := range sts {
		names := make([]string, len(st.Records))
		for i, r := range st.Records {
			names[i] = r.Name
		}
		for _, p := range dedupe.FindSimilar(names, s.nameDistance) {
			metrics.RecordDuplicateName(metrics.DuplicateSimilar)
			log.Warn(ctx, "similar names",
				logger.String("division", string(st.Division)),
				logger.String("a", p.A),
				logger.String("b", p.B),
				logger.Int("distance", p.Distance),
			)
			warnings = append(warnings, fmt.Sprintf("%s: %q and %q look alike (distance %d)", st.Division, p.A, p.B, p.Distance))
		}
	}
	return warnings
}

// uniqueNames keeps the first row of every name and lists the repeats.
func uniqueNames(ctx context.Context, results []model.ParticipantResult) ([]model.ParticipantResult, []string) {
	seen := dedupe.NewInMemoryDeduper()
	kept := make([]model.ParticipantResult, 0, len(results))
	for _, r := range results {
		if seen.SeenAndRecord(ctx, r.Name) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, seen.Duplicates()
}

// standing aggregates every event table of division d in season order.
func standing(ctx context.Context, agg *standings.Aggregator, d model.Division, outcomes []eventOutcome) (Standing, error) {
	st := Standing{Division: d}
	var tables []model.EventTable
	for _, o := range outcomes {
		t, ok := o.tables[d]
		if !ok {
			continue
		}
		st.Events = append(st.Events, t.EventID)
		tables = append(tables, t)
	}
	recs, err := agg.Aggregate(ctx, tables)
	if err != nil {
		return st, fmt.Errorf("aggregate %s: %w", d, err)
	}
	st.Records = recs
	return st, nil
}

// divisionsOf lists the divisions with results, known divisions first.
func divisionsOf(outcomes []eventOutcome) []model.Division {
	set := make(map[model.Division]struct{})
	for _, o := range outcomes {
		for d := range o.tables {
			set[d] = struct{}{}
		}
	}
	return slices.SortedFunc(maps.Keys(set), func(a, b model.Division) int {
		ia, ib := slices.Index(divisionOrder, a), slices.Index(divisionOrder, b)
		if ia < 0 {
			ia = len(divisionOrder)
		}
		if ib < 0 {
			ib = len(divisionOrder)
		}
		if c := cmp.Compare(ia, ib); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
