package cleanup

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/rbrseries/internal/domain/model"
)

var errBadMark = errors.New("not a time or position")

// nonFinishers are status values that replace a time for runners who were
// disqualified, did not start or did not finish.
var nonFinishers = map[string]struct{}{ //nolint:gochecknoglobals // read-only set
	"DQ":  {},
	"DSQ": {},
	"DNS": {},
	"DNF": {},
}

func isNonFinisher(cell string) bool {
	_, ok := nonFinishers[strings.ToUpper(strings.TrimSpace(cell))]
	return ok
}

// ParseMark converts a time ("H:MM:SS", "MM:SS", optional fraction) to seconds
// or a plain number (a position) to its value.
func ParseMark(cell string) (model.Mark, error) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errBadMark)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", errBadMark, cell)
	}

	var total float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q", errBadMark, cell)
		}
		last := i == len(parts)-1
		if !last && v != float64(int(v)) {
			return 0, fmt.Errorf("%w: fractional unit in %q", errBadMark, cell)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("%w: unit out of range in %q", errBadMark, cell)
		}
		total = total*60 + v
	}
	return model.Mark(total), nil
}

// NormalizeTime rewrites "MM:SS" as "0:MM:SS" and leaves other values alone.
func NormalizeTime(cell string) string {
	s := strings.TrimSpace(cell)
	if strings.Count(s, ":") == 1 {
		return "0:" + s
	}
	return s
}
