package cleanup

import (
	"fmt"
	"strings"

	"github.com/okian/rbrseries/internal/adapters/reader"
	"github.com/okian/rbrseries/internal/domain/model"
)

// Columns names the header cells holding each field. Time and Position are
// both optional but at least one must be set; when both are, Position breaks
// ties on Time.
type Columns struct {
	Name     string
	Time     string
	Position string
}

// DefaultNameColumn is the name header used by the series' timing providers.
const DefaultNameColumn = "Naam"

// line is one data row with its 1-based position in the source file.
type line struct {
	num   int
	cells []string
}

func (l line) cell(i int) string {
	if i < 0 || i >= len(l.cells) {
		return ""
	}
	return strings.TrimSpace(l.cells[i])
}

func (l line) first() string { return l.cell(0) }

func (l line) blank() bool {
	for i := range l.cells {
		if l.cell(i) != "" {
			return false
		}
	}
	return true
}

// subtitle reports a row where only the first cell is filled.
func (l line) subtitle() bool {
	if l.first() == "" {
		return false
	}
	for i := 1; i < len(l.cells); i++ {
		if l.cell(i) != "" {
			return false
		}
	}
	return true
}

// frame is a result table split into a header and the data rows below it.
type frame struct {
	source string
	header []string
	lines  []line
}

// newFrame uses the row at headerRow (0-based) as the header. Rows above it
// are titles and are discarded.
func newFrame(t *reader.Table, headerRow int) (*frame, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no table", ErrConfiguration)
	}
	if headerRow < 0 || headerRow >= len(t.Rows) {
		return nil, fmt.Errorf("%w: %s has %d rows, header expected at row %d",
			ErrDataShape, t.Source, len(t.Rows), headerRow+1)
	}

	f := &frame{source: t.Source}
	for _, h := range t.Rows[headerRow] {
		f.header = append(f.header, strings.TrimSpace(h))
	}
	for i := headerRow + 1; i < len(t.Rows); i++ {
		f.lines = append(f.lines, line{num: i + 1, cells: t.Rows[i]})
	}
	return f, nil
}

func (f *frame) column(name string) (int, error) {
	for i, h := range f.header {
		if strings.EqualFold(h, name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s has no column %q", ErrDataShape, f.source, name)
}

// dropFooter removes the last n rows.
func (f *frame) dropFooter(n int) {
	if n <= 0 {
		return
	}
	f.lines = f.lines[:max(len(f.lines)-n, 0)]
}

// keep retains rows matching pred.
func (f *frame) keep(pred func(line) bool) {
	out := f.lines[:0]
	for _, l := range f.lines {
		if pred(l) {
			out = append(out, l)
		}
	}
	f.lines = out
}

// isHeaderRepeat reports a row that restates the header's first cell.
func (f *frame) isHeaderRepeat(l line) bool {
	return len(f.header) > 0 && f.header[0] != "" && strings.EqualFold(l.first(), f.header[0])
}

// results converts the remaining rows into participant results. Rows whose
// time or position holds a non-finisher status are skipped.
func (f *frame) results(cols Columns) ([]model.ParticipantResult, error) {
	nameCol, err := f.column(nameOrDefault(cols.Name))
	if err != nil {
		return nil, err
	}
	if cols.Time == "" && cols.Position == "" {
		return nil, fmt.Errorf("%w: neither a time nor a position column configured", ErrConfiguration)
	}

	primaryName, secondaryName := cols.Time, cols.Position
	if primaryName == "" {
		primaryName, secondaryName = cols.Position, ""
	}
	primaryCol, err := f.column(primaryName)
	if err != nil {
		return nil, err
	}
	secondaryCol := -1
	if secondaryName != "" {
		if secondaryCol, err = f.column(secondaryName); err != nil {
			return nil, err
		}
	}

	out := make([]model.ParticipantResult, 0, len(f.lines))
	for _, l := range f.lines {
		if isNonFinisher(l.cell(primaryCol)) {
			continue
		}
		name := model.NormalizeName(l.cell(nameCol))
		if name == "" {
			return nil, fmt.Errorf("%w: %s row %d: empty %q", ErrDataShape, f.source, l.num, f.header[nameCol])
		}
		primary, err := ParseMark(l.cell(primaryCol))
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d column %q: %v", ErrDataShape, f.source, l.num, primaryName, err)
		}
		r := model.ParticipantResult{Name: name, Primary: primary}
		if secondaryCol >= 0 && l.cell(secondaryCol) != "" {
			sec, err := ParseMark(l.cell(secondaryCol))
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d column %q: %v", ErrDataShape, f.source, l.num, secondaryName, err)
			}
			r.Secondary = model.Some(sec)
		}
		out = append(out, r)
	}
	return out, nil
}

func nameOrDefault(name string) string {
	if name == "" {
		return DefaultNameColumn
	}
	return name
}
