package cleanup

import (
	"context"
	"fmt"

	"github.com/okian/rbrseries/internal/adapters/reader"
	"github.com/okian/rbrseries/internal/domain/model"
)

// PlainHandler cleans exports with one header row and one row per finisher.
// A combined table yields the overall division; men and women tables yield
// their own.
type PlainHandler struct{}

// Clean implements Handler.
func (PlainHandler) Clean(_ context.Context, in Input) (Result, error) {
	sources := map[model.Division]*reader.Table{}
	if in.All != nil {
		sources[model.DivisionOverall] = in.All
	}
	if in.Men != nil {
		sources[model.DivisionMen] = in.Men
	}
	if in.Women != nil {
		sources[model.DivisionWomen] = in.Women
	}
	if len(sources) == 0 {
		return Result{}, fmt.Errorf("%w: no result table supplied", ErrConfiguration)
	}

	res := Result{Divisions: make(map[model.Division][]model.ParticipantResult, len(sources))}
	for div, t := range sources {
		f, err := newFrame(t, in.HeaderRow)
		if err != nil {
			return Result{}, err
		}
		f.dropFooter(in.FooterRows)
		f.keep(func(l line) bool { return !l.blank() && !f.isHeaderRepeat(l) })

		rows, err := f.results(in.Columns)
		if err != nil {
			return Result{}, err
		}
		res.Divisions[div] = rows
	}
	return res, nil
}
