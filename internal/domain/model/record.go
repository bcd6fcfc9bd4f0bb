package model

// SeriesRecord is a participant's season-wide classification row.
// Points and Ranks only hold events the participant contested.
type SeriesRecord struct {
	Name   string
	Points map[string]int
	Ranks  map[string]int

	// Ladder holds the k-th best event rank at index k-1, absent when fewer
	// than k events were contested.
	Ladder []Optional[int]

	RaceCount int
	Bonus     int
	Total     int
	FinalRank int

	AgeGroup     Optional[string]
	AgeGroupRank Optional[int]
}

// PointsFor returns the points scored in an event.
func (r SeriesRecord) PointsFor(eventID string) Optional[int] {
	if p, ok := r.Points[eventID]; ok {
		return Some(p)
	}
	return None[int]()
}

// RankFor returns the rank achieved in an event.
func (r SeriesRecord) RankFor(eventID string) Optional[int] {
	if rk, ok := r.Ranks[eventID]; ok {
		return Some(rk)
	}
	return None[int]()
}
