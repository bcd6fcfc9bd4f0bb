// Package model contains domain models passed between layers.
package model

import "cmp"

// Division identifies one standing within a season, e.g. men or women.
type Division string

// Divisions produced by the cleanup handlers.
const (
	DivisionOverall Division = "overall"
	DivisionMen     Division = "men"
	DivisionWomen   Division = "women"
)

// Mark is a comparable finishing value: seconds for times, the raw number for
// explicit positions. Lower is better.
type Mark float64

// Compare orders two marks ascending.
func (m Mark) Compare(other Mark) int {
	return cmp.Compare(m, other)
}

// ParticipantResult is one cleaned row of an event's results.
type ParticipantResult struct {
	Name      string         // normalized identity key
	Primary   Mark           // finish time or position
	Secondary Optional[Mark] // breaks ties on Primary when present
}

// EventScore is a participant's points and rank within one event.
type EventScore struct {
	Name    string
	EventID string
	Points  int
	Rank    int
}

// EventTable holds the scored rows of one event for one division.
type EventTable struct {
	EventID string
	Scores  []EventScore
}

// Len returns the number of scored rows.
func (t EventTable) Len() int { return len(t.Scores) }
