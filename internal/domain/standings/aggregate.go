// Package standings folds scored event tables into a season classification.
package standings

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/okian/rbrseries/internal/domain/model"
)

// defaultBestOf is the number of event results counted towards the total.
const defaultBestOf = 3

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithBestOf sets how many of a participant's best event results count.
func WithBestOf(k int) Option {
	return func(a *Aggregator) {
		if k > 0 {
			a.bestOf = k
		}
	}
}

// WithBonus replaces the participation bonus table.
func WithBonus(b BonusTable) Option {
	return func(a *Aggregator) {
		if b != nil {
			a.bonus = b.Clone()
		}
	}
}

// WithAgeGroups enables age-group ranking.
func WithAgeGroups(l AgeGroupLookup) Option {
	return func(a *Aggregator) {
		a.ageGroups = l
	}
}

// Aggregator computes season standings. It is stateless between calls.
type Aggregator struct {
	bestOf    int
	bonus     BonusTable
	ageGroups AgeGroupLookup
}

// NewAggregator creates an aggregator counting the best three results with the
// default bonus table.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		bestOf: defaultBestOf,
		bonus:  DefaultBonus(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BestOf returns the number of counted results.
func (a *Aggregator) BestOf() int { return a.bestOf }

// Aggregate joins the tables on participant name and returns one record per
// distinct name, sorted by final rank then name. The result does not depend
// on the order of tables.
func (a *Aggregator) Aggregate(ctx context.Context, tables []model.EventTable) ([]model.SeriesRecord, error) {
	byName, events, err := join(tables)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	recs := make([]model.SeriesRecord, 0, len(byName))
	for _, rec := range byName {
		a.finalize(rec, events)
		recs = append(recs, *rec)
	}

	slices.SortFunc(recs, func(x, y model.SeriesRecord) int {
		if c := Compare(x, y); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
	assignFinalRanks(recs)

	if a.ageGroups != nil {
		rankAgeGroups(recs, a.ageGroups)
	}
	return recs, nil
}

// join outer-joins the tables on name. It also returns the number of events
// that contributed at least one row.
func join(tables []model.EventTable) (map[string]*model.SeriesRecord, int, error) {
	byName := make(map[string]*model.SeriesRecord)
	seenEvents := make(map[string]struct{}, len(tables))
	events := 0

	for _, t := range tables {
		if t.EventID == "" {
			return nil, 0, ErrEmptyEventID
		}
		if _, dup := seenEvents[t.EventID]; dup {
			return nil, 0, fmt.Errorf("%w: %s", ErrDuplicateEvent, t.EventID)
		}
		seenEvents[t.EventID] = struct{}{}
		if t.Len() > 0 {
			events++
		}

		for _, s := range t.Scores {
			rec, ok := byName[s.Name]
			if !ok {
				rec = &model.SeriesRecord{
					Name:   s.Name,
					Points: make(map[string]int),
					Ranks:  make(map[string]int),
				}
				byName[s.Name] = rec
			}
			if _, dup := rec.Points[t.EventID]; dup {
				return nil, 0, fmt.Errorf("%w: %q in event %s", ErrDuplicateEntry, s.Name, t.EventID)
			}
			rec.Points[t.EventID] = s.Points
			rec.Ranks[t.EventID] = s.Rank
		}
	}
	return byName, events, nil
}

func (a *Aggregator) finalize(rec *model.SeriesRecord, events int) {
	rec.Ladder = buildLadder(rec.Ranks, events)

	pts := make([]int, 0, len(rec.Points))
	for _, p := range rec.Points {
		if p > 0 {
			rec.RaceCount++
		}
		pts = append(pts, p)
	}
	rec.Bonus = a.bonus.For(rec.RaceCount)

	slices.Sort(pts)
	slices.Reverse(pts)
	best := 0
	for _, p := range pts[:min(a.bestOf, len(pts))] {
		best += p
	}
	rec.Total = best + rec.Bonus
}

// assignFinalRanks applies "min" ranking: equal keys share the rank of the
// first of them and ties consume the following slots.
func assignFinalRanks(recs []model.SeriesRecord) {
	for i := range recs {
		if i > 0 && Compare(recs[i-1], recs[i]) == 0 {
			recs[i].FinalRank = recs[i-1].FinalRank
			continue
		}
		recs[i].FinalRank = i + 1
	}
}
