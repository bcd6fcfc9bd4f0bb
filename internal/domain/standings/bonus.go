package standings

import "maps"

// BonusTable maps an exact race count to the participation bonus it earns.
// Counts that are not listed earn nothing.
type BonusTable map[int]int

// DefaultBonus rewards four contested events with 15 points and a full
// five-event season with 30.
func DefaultBonus() BonusTable {
	return BonusTable{4: 15, 5: 30}
}

// For returns the bonus for raceCount.
func (b BonusTable) For(raceCount int) int {
	return b[raceCount]
}

// Clone returns an independent copy of the table.
func (b BonusTable) Clone() BonusTable {
	return maps.Clone(b)
}
