package standings

import (
	"cmp"
	"slices"

	"github.com/okian/rbrseries/internal/domain/model"
)

// Compare orders two records for the final standing. It returns a negative
// number when a ranks ahead of b, zero when their composite keys are equal.
//
// The key is Total descending followed by the tie-break ladder ascending.
// An absent ladder entry is worse than any present one.
func Compare(a, b model.SeriesRecord) int {
	if c := cmp.Compare(b.Total, a.Total); c != 0 {
		return c
	}
	n := max(len(a.Ladder), len(b.Ladder))
	for k := range n {
		if c := compareRung(rung(a.Ladder, k), rung(b.Ladder, k)); c != 0 {
			return c
		}
	}
	return 0
}

func rung(ladder []model.Optional[int], k int) model.Optional[int] {
	if k < len(ladder) {
		return ladder[k]
	}
	return model.None[int]()
}

func compareRung(a, b model.Optional[int]) int {
	av, aok := a.Get()
	bv, bok := b.Get()
	switch {
	case aok && bok:
		return cmp.Compare(av, bv)
	case aok:
		return -1
	case bok:
		return 1
	default:
		return 0
	}
}

// buildLadder returns the contested ranks sorted ascending, padded with
// absent entries up to events.
func buildLadder(ranks map[string]int, events int) []model.Optional[int] {
	sorted := make([]int, 0, len(ranks))
	for _, r := range ranks {
		sorted = append(sorted, r)
	}
	slices.Sort(sorted)

	ladder := make([]model.Optional[int], max(events, len(sorted)))
	for i, r := range sorted {
		ladder[i] = model.Some(r)
	}
	return ladder
}
