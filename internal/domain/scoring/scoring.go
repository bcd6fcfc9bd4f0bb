// Package scoring turns one event's cleaned results into points and ranks.
package scoring

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/rbrseries/internal/domain/model"
)

// defaultFloor is awarded to every finisher ranked beyond the curve.
const defaultFloor = 1

// Option applies a configuration option to the EventScorer.
type Option func(*EventScorer)

// WithCurve replaces the default points curve.
func WithCurve(c Curve) Option {
	return func(s *EventScorer) {
		if c.Len() > 0 {
			s.curve = c
		}
	}
}

// WithFloor sets the points for ranks past the end of the curve.
func WithFloor(points int) Option {
	return func(s *EventScorer) {
		if points > 0 {
			s.floor = points
		}
	}
}

// Scorer computes points and ranks for one event.
type Scorer interface {
	// Score ranks results and attaches points, honoring ctx for cancellation.
	Score(ctx context.Context, eventID string, results []model.ParticipantResult) (model.EventTable, error)
}

// EventScorer implements Scorer with a fixed points curve.
// It holds no mutable state and is safe for concurrent use.
type EventScorer struct {
	curve Curve
	floor int
}

// NewEventScorer creates a scorer using DefaultCurve unless overridden.
func NewEventScorer(opts ...Option) *EventScorer {
	s := &EventScorer{
		curve: DefaultCurve,
		floor: defaultFloor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Curve returns the curve used by the scorer.
func (s *EventScorer) Curve() Curve { return s.curve }

// Score sorts results ascending by primary then secondary mark and assigns
// ranks 1..N by position. Equal marks keep their input order and still get
// consecutive ranks. Duplicate names are scored independently.
func (s *EventScorer) Score(ctx context.Context, eventID string, results []model.ParticipantResult) (model.EventTable, error) {
	if eventID == "" {
		return model.EventTable{}, ErrEmptyEventID
	}
	if err := ctx.Err(); err != nil {
		return model.EventTable{}, fmt.Errorf("score %s: %w", eventID, err)
	}

	sorted := make([]model.ParticipantResult, len(results))
	copy(sorted, results)
	slices.SortStableFunc(sorted, compareResults)

	table := model.EventTable{
		EventID: eventID,
		Scores:  make([]model.EventScore, len(sorted)),
	}
	for i, r := range sorted {
		rank := i + 1
		table.Scores[i] = model.EventScore{
			Name:    r.Name,
			EventID: eventID,
			Points:  s.pointsFor(rank),
			Rank:    rank,
		}
	}
	return table, nil
}

func (s *EventScorer) pointsFor(rank int) int {
	if p, ok := s.curve.At(rank); ok {
		return p
	}
	return s.floor
}

// compareResults orders by primary mark, then secondary mark. A row carrying a
// secondary mark sorts ahead of one without it on an equal primary.
func compareResults(a, b model.ParticipantResult) int {
	if c := a.Primary.Compare(b.Primary); c != 0 {
		return c
	}
	as, aok := a.Secondary.Get()
	bs, bok := b.Secondary.Get()
	switch {
	case aok && bok:
		return as.Compare(bs)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}
