package timeline

import "sort"

const (
	interestWeight = 0.6
	clarityWeight  = 0.4
)

// Score returns the selection score for an analysis.
func (a Analysis) Score() float64 {
	return float64(a.InterestScore)*interestWeight + float64(a.ClarityScore)*clarityWeight
}

// Flagged reports whether the analysis marks the segment as unusable content.
func (a Analysis) Flagged() bool {
	return a.IsTangent || a.IsRepetition || a.HasError
}

// SelectBest picks the segments to keep under the target duration budget.
//
// Flagged segments are dropped, the rest are ranked by weighted score with a
// stable sort (ties keep their original order, which makes selection
// reproducible), then admitted greedily in rank order as long as they fit the
// remaining budget. A segment that does not fit is skipped but shorter,
// lower-ranked segments after it are still considered: this is first-fit
// packing by score order, not an optimal knapsack. The selection is returned
// in chronological order.
func SelectBest(items []ScoredSegment, targetDuration float64) []Segment {
	ranked := make([]ScoredSegment, 0, len(items))
	for _, it := range items {
		if it.Analysis.Flagged() {
			continue
		}
		ranked = append(ranked, it)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Analysis.Score() > ranked[j].Analysis.Score()
	})

	var selected []Segment
	total := 0.0
	for _, it := range ranked {
		d := it.Segment.Duration()
		if total+d > targetDuration {
			continue
		}
		selected = append(selected, it.Segment)
		total += d
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Start < selected[j].Start
	})
	return selected
}
