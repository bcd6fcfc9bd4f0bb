package cleanup

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/rbrseries/internal/domain/model"
)

// CategoryBlocksHandler cleans a combined export grouped into category
// blocks. A block starts at a row whose first cell is the category label and
// ends before the next row with an empty first cell.
//
// Drop categories are removed first; a missing one is a warning. The men and women categories are then
// merged into their divisions, repeated header rows and subtitle rows are
// removed and only the first entry of a repeated name is kept.
type CategoryBlocksHandler struct{}

// Clean implements Handler.
func (CategoryBlocksHandler) Clean(_ context.Context, in Input) (Result, error) {
	if in.All == nil {
		return Result{}, fmt.Errorf("%w: format %s needs a combined table", ErrConfiguration, FormatCategoryBlocks)
	}
	cats := in.Categories
	if cats.Empty() {
		builtin, ok := BuiltinCategories(in.Year)
		if !ok {
			return Result{}, fmt.Errorf("%w: no category lists for year %d", ErrUnsupportedInput, in.Year)
		}
		cats = builtin
	}

	f, err := newFrame(in.All, in.HeaderRow)
	if err != nil {
		return Result{}, err
	}
	f.dropFooter(in.FooterRows)

	res := Result{Divisions: make(map[model.Division][]model.ParticipantResult, 2)}
	for _, c := range cats.Drop {
		start, end, ok := f.block(c)
		if !ok {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("event %s: drop category %q not found in %s", in.EventID, c, f.source))
			continue
		}
		f.lines = append(f.lines[:start], f.lines[end:]...)
	}

	for _, div := range []struct {
		id     model.Division
		labels []string
	}{
		{model.DivisionMen, cats.Men},
		{model.DivisionWomen, cats.Women},
	} {
		if len(div.labels) == 0 {
			continue
		}
		merged, err := f.merge(div.labels)
		if err != nil {
			return Result{}, err
		}
		merged.keep(func(l line) bool {
			return !l.blank() && !l.subtitle() && !merged.isHeaderRepeat(l)
		})

		rows, err := merged.results(in.Columns)
		if err != nil {
			return Result{}, err
		}
		rows, dropped := firstByName(rows)
		for _, name := range dropped {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("event %s: dropped repeated %s entry for %q", in.EventID, div.id, name))
		}
		res.Divisions[div.id] = rows
	}
	if len(res.Divisions) == 0 {
		return Result{}, fmt.Errorf("%w: no men or women categories configured", ErrConfiguration)
	}
	return res, nil
}

// block locates the rows of a category, returning a half-open index range.
func (f *frame) block(label string) (int, int, bool) {
	start := -1
	for i, l := range f.lines {
		if strings.EqualFold(l.first(), strings.TrimSpace(label)) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	end := len(f.lines)
	for i := start + 1; i < len(f.lines); i++ {
		if f.lines[i].first() == "" {
			end = i
			break
		}
	}
	return start, end, true
}

// merge concatenates the blocks of labels, in order, into a new frame.
func (f *frame) merge(labels []string) (*frame, error) {
	out := &frame{source: f.source, header: f.header}
	for _, label := range labels {
		start, end, ok := f.block(label)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no category %q", ErrDataShape, f.source, label)
		}
		out.lines = append(out.lines, f.lines[start:end]...)
	}
	return out, nil
}

// firstByName keeps the first result for each name and reports the others.
func firstByName(rows []model.ParticipantResult) ([]model.ParticipantResult, []string) {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0]
	var dropped []string
	for _, r := range rows {
		if _, dup := seen[r.Name]; dup {
			dropped = append(dropped, r.Name)
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
	}
	return out, dropped
}
