// Package types contains display shapes shared by the exporters.
package types

import (
	"strconv"

	"github.com/okian/rbrseries/internal/domain/model"
	"github.com/okian/rbrseries/internal/domain/standings"
)

// Row is one line of a published standing. Absent event points are left out
// of Points and rendered blank by Cells.
type Row struct {
	Rank     int            `json:"rank" yaml:"rank"`
	Name     string         `json:"name" yaml:"name"`
	Points   map[string]int `json:"points,omitempty" yaml:"points,omitempty"`
	Bonus    int            `json:"bonus" yaml:"bonus"`
	Total    int            `json:"total" yaml:"total"`
	AgeGroup string         `json:"age_group,omitempty" yaml:"age_group,omitempty"`
}

// FromRecord converts a classified record into a display row.
func FromRecord(rec model.SeriesRecord) Row {
	pts := make(map[string]int, len(rec.Points))
	for ev, p := range rec.Points {
		pts[ev] = p
	}
	return Row{
		Rank:     rec.FinalRank,
		Name:     rec.Name,
		Points:   pts,
		Bonus:    rec.Bonus,
		Total:    rec.Total,
		AgeGroup: standings.Label(rec),
	}
}

// Header returns the column titles for a standing over events, in order.
func Header(events []string) []string {
	h := make([]string, 0, len(events)+5)
	h = append(h, "Rank", "Name")
	h = append(h, events...)
	return append(h, "Bonus", "Total", "Age group")
}

// Cells renders the row in Header order.
func (r Row) Cells(events []string) []string {
	c := make([]string, 0, len(events)+5)
	c = append(c, strconv.Itoa(r.Rank), r.Name)
	for _, ev := range events {
		if p, ok := r.Points[ev]; ok {
			c = append(c, strconv.Itoa(p))
		} else {
			c = append(c, "")
		}
	}
	return append(c, strconv.Itoa(r.Bonus), strconv.Itoa(r.Total), r.AgeGroup)
}

// Report is a published classification run.
type Report struct {
	RunID     string     `json:"run_id" yaml:"run_id"`
	Year      int        `json:"year" yaml:"year"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Events    []Event    `json:"events" yaml:"events"`
	Standings []Standing `json:"standings" yaml:"standings"`
	Warnings  []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Event describes one event of a report.
type Event struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Format       string         `json:"format" yaml:"format"`
	Participants map[string]int `json:"participants,omitempty" yaml:"participants,omitempty"`
}

// Standing is the published classification of one division.
type Standing struct {
	Division string   `json:"division" yaml:"division"`
	Events   []string `json:"events" yaml:"events"`
	Rows     []Row    `json:"rows" yaml:"rows"`
}

// NewStanding converts classified records into a standing over events.
func NewStanding(division string, events []string, recs []model.SeriesRecord) Standing {
	rows := make([]Row, len(recs))
	for i, rec := range recs {
		rows[i] = FromRecord(rec)
	}
	return Standing{Division: division, Events: events, Rows: rows}
}

// Header returns the column titles of the standing.
func (s Standing) Header() []string { return Header(s.Events) }
