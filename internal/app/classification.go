package service

import (
	"slices"

	"github.com/okian/rbrseries/internal/adapters/cleanup"
	"github.com/okian/rbrseries/internal/domain/model"
	"github.com/okian/rbrseries/internal/domain/types"
)

// Classification is the outcome of one season run.
type Classification struct {
	RunID     string
	Year      int
	Name      string
	Events    []EventInfo
	Standings []Standing
	Warnings  []string
}

// Standing returns the standing of division d.
func (c *Classification) Standing(d model.Division) (Standing, bool) {
	for _, s := range c.Standings {
		if s.Division == d {
			return s, true
		}
	}
	return Standing{}, false
}

// EventInfo summarizes how one event was processed.
type EventInfo struct {
	ID     string
	Name   string
	Format cleanup.Format

	// Participants counts scored rows per division. Pending events have none.
	Participants map[model.Division]int
}

// Pending reports whether the event contributed no results.
func (e EventInfo) Pending() bool { return len(e.Participants) == 0 }

// Standing is the classification of one division.
type Standing struct {
	Division model.Division

	// Events lists, in season order, the events with results in this division.
	Events  []string
	Records []model.SeriesRecord
}

// Report converts the classification into its published shape.
func (c *Classification) Report() types.Report {
	r := types.Report{
		RunID:    c.RunID,
		Year:     c.Year,
		Name:     c.Name,
		Events:   make([]types.Event, len(c.Events)),
		Warnings: slices.Clone(c.Warnings),
	}
	for i, e := range c.Events {
		var participants map[string]int
		if len(e.Participants) > 0 {
			participants = make(map[string]int, len(e.Participants))
			for d, n := range e.Participants {
				participants[string(d)] = n
			}
		}
		r.Events[i] = types.Event{ID: e.ID, Name: e.Name, Format: e.Format.String(), Participants: participants}
	}
	for _, s := range c.Standings {
		r.Standings = append(r.Standings, types.NewStanding(string(s.Division), slices.Clone(s.Events), s.Records))
	}
	return r
}
