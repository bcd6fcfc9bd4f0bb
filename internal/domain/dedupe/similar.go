package dedupe

import (
	"slices"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Pair is two distinct names within edit distance of each other.
type Pair struct {
	A, B     string
	Distance int
}

// FindSimilar returns every pair of distinct names whose Levenshtein distance
// is between 1 and maxDistance. Pairs are ordered by A then B, with A < B.
// A maxDistance below 1 disables the check.
func FindSimilar(names []string, maxDistance int) []Pair {
	if maxDistance < 1 {
		return nil
	}
	uniq := slices.Clone(names)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	var pairs []Pair
	for i := range uniq {
		li := utf8.RuneCountInString(uniq[i])
		for j := i + 1; j < len(uniq); j++ {
			lj := utf8.RuneCountInString(uniq[j])
			if abs(li-lj) > maxDistance {
				continue
			}
			d := levenshtein.ComputeDistance(uniq[i], uniq[j])
			if d >= 1 && d <= maxDistance {
				pairs = append(pairs, Pair{A: uniq[i], B: uniq[j], Distance: d})
			}
		}
	}
	return pairs
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
