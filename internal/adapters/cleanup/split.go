package cleanup

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/rbrseries/internal/adapters/reader"
	"github.com/okian/rbrseries/internal/domain/model"
)

// markerRows are summary rows interleaved with finishers.
var markerRows = map[string]struct{}{ //nolint:gochecknoglobals // read-only set
	"#CAT": {},
	"#TOT": {},
}

// SplitOverallHandler cleans separate men and women overall exports. Title
// rows above the header, configured footer rows, blank rows, subtitle rows,
// marker rows and non-finishers are dropped.
type SplitOverallHandler struct{}

// Clean implements Handler.
func (SplitOverallHandler) Clean(_ context.Context, in Input) (Result, error) {
	if in.Men == nil || in.Women == nil {
		return Result{}, fmt.Errorf("%w: format %s needs both men and women tables", ErrConfiguration, FormatSplitOverall)
	}

	res := Result{Divisions: make(map[model.Division][]model.ParticipantResult, 2)}
	for div, t := range map[model.Division]*reader.Table{model.DivisionMen: in.Men, model.DivisionWomen: in.Women} {
		f, err := newFrame(t, in.HeaderRow)
		if err != nil {
			return Result{}, err
		}
		f.dropFooter(in.FooterRows)
		f.keep(func(l line) bool {
			if l.blank() || l.subtitle() || f.isHeaderRepeat(l) {
				return false
			}
			first := strings.ToUpper(l.first())
			if _, marker := markerRows[first]; marker {
				return false
			}
			return !isNonFinisher(first)
		})

		rows, err := f.results(in.Columns)
		if err != nil {
			return Result{}, err
		}
		res.Divisions[div] = rows
	}
	return res, nil
}
