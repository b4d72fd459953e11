package timeline

import "sort"

// Interval is a half-open [Start, End) span in seconds.
type Interval struct {
	Start float64
	End   float64
}

// Overlaps reports whether a and b share any time. Half-open semantics:
// intervals that merely touch do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Clamp restricts iv to bounds. The second return is false when the clamped
// interval has zero or negative length.
func Clamp(iv, bounds Interval) (Interval, bool) {
	start := iv.Start
	if start < bounds.Start {
		start = bounds.Start
	}
	end := iv.End
	if end > bounds.End {
		end = bounds.End
	}
	if end <= start {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Subtract removes the cut intervals from span and returns the surviving
// sub-intervals in order. Cuts may be unsorted or overlapping: the sweep keeps
// a cursor that only ever advances, so no separate cut-merging pass is needed.
// Degenerate slivers are not filtered here; that happens at assembly time so
// this stays a pure function of its inputs.
func Subtract(span Interval, cuts []Cut) []KeepInterval {
	if span.End <= span.Start {
		return nil
	}

	sorted := make([]Cut, len(cuts))
	copy(sorted, cuts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var keeps []KeepInterval
	cursor := span.Start

	for _, cut := range sorted {
		clamped, ok := Clamp(Interval{Start: cut.Start, End: cut.End}, span)
		if !ok {
			continue
		}
		if clamped.Start > cursor {
			end := clamped.Start
			if end > span.End {
				end = span.End
			}
			keeps = append(keeps, KeepInterval{Start: cursor, End: end})
		}
		if clamped.End > cursor {
			cursor = clamped.End
		}
	}

	if cursor < span.End {
		keeps = append(keeps, KeepInterval{Start: cursor, End: span.End})
	}

	return keeps
}
