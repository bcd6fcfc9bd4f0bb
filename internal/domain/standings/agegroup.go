package standings

import (
	"fmt"

	"github.com/okian/rbrseries/internal/domain/model"
)

// AgeGroupLookup resolves a normalized name to its age group.
type AgeGroupLookup interface {
	AgeGroup(name string) (string, bool)
}

// AgeGroupMap is a static AgeGroupLookup.
type AgeGroupMap map[string]string

// AgeGroup implements AgeGroupLookup.
func (m AgeGroupMap) AgeGroup(name string) (string, bool) {
	g, ok := m[name]
	return g, ok
}

// rankAgeGroups assigns AgeGroupRank within each age group by Total with
// "min" ranking. recs must already be in final standing order.
func rankAgeGroups(recs []model.SeriesRecord, lookup AgeGroupLookup) {
	type groupState struct {
		seen      int
		lastTotal int
		lastRank  int
	}
	groups := make(map[string]*groupState)

	for i := range recs {
		g, ok := lookup.AgeGroup(recs[i].Name)
		if !ok || g == "" {
			continue
		}
		recs[i].AgeGroup = model.Some(g)

		st, exists := groups[g]
		if !exists {
			st = &groupState{}
			groups[g] = st
		}
		st.seen++
		if st.seen == 1 || recs[i].Total != st.lastTotal {
			st.lastRank = st.seen
			st.lastTotal = recs[i].Total
		}
		recs[i].AgeGroupRank = model.Some(st.lastRank)
	}
}

// Label renders the age-group rank for display, e.g. "3 (M40-44)".
// It returns an empty string when the participant has no age group.
func Label(rec model.SeriesRecord) string {
	g, ok := rec.AgeGroup.Get()
	if !ok {
		return ""
	}
	r, ok := rec.AgeGroupRank.Get()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d (%s)", r, g)
}
