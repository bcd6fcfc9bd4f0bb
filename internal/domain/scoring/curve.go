package scoring

import "fmt"

// Curve is an immutable, non-increasing points table indexed by rank.
type Curve struct {
	points []int
}

// DefaultCurve is the series' points curve: 250, 240, then 230 down to 175 in
// steps of 5, 170 down to 102 in steps of 2, and 100 down to 1.
var DefaultCurve = buildDefaultCurve() //nolint:gochecknoglobals // read-only table shared by all scorers

func buildDefaultCurve() Curve {
	pts := []int{250, 240}
	for p := 230; p > 170; p -= 5 {
		pts = append(pts, p)
	}
	for p := 170; p > 100; p -= 2 {
		pts = append(pts, p)
	}
	for p := 100; p > 0; p-- {
		pts = append(pts, p)
	}
	return Curve{points: pts}
}

// NewCurve validates and copies a custom curve.
func NewCurve(points ...int) (Curve, error) {
	if len(points) == 0 {
		return Curve{}, fmt.Errorf("%w: empty", ErrInvalidCurve)
	}
	for i, p := range points {
		if p <= 0 {
			return Curve{}, fmt.Errorf("%w: non-positive value %d at rank %d", ErrInvalidCurve, p, i+1)
		}
		if i > 0 && p > points[i-1] {
			return Curve{}, fmt.Errorf("%w: value %d at rank %d exceeds rank %d", ErrInvalidCurve, p, i+1, i)
		}
	}
	cp := make([]int, len(points))
	copy(cp, points)
	return Curve{points: cp}, nil
}

// Len returns the number of ranks covered by the curve.
func (c Curve) Len() int { return len(c.points) }

// At returns the points for a 1-based rank and whether the rank is covered.
func (c Curve) At(rank int) (int, bool) {
	if rank < 1 || rank > len(c.points) {
		return 0, false
	}
	return c.points[rank-1], true
}

// Values returns a copy of the curve.
func (c Curve) Values() []int {
	cp := make([]int, len(c.points))
	copy(cp, c.points)
	return cp
}
