package timeline

import "fmt"

// minKeepDuration drops slivers left over after cut reconciliation that are
// too short to survive an audible edit.
const minKeepDuration = 0.05

// AssembleOptions tunes edit list assembly.
type AssembleOptions struct {
	// StrictCuts rejects cuts that fall outside their segment's span instead
	// of clamping them to it.
	StrictCuts bool
}

// Assemble flattens the selected segments and their cuts into the final edit
// decision list: one entry per keep interval, in chronological order. Keep
// intervals shorter than 50ms are dropped here, after reconciliation.
func Assemble(selected []Segment, cutsBySegment map[string][]Cut, opts AssembleOptions) ([]EditEntry, error) {
	var entries []EditEntry

	for _, seg := range selected {
		span := Interval{Start: seg.Start, End: seg.End}
		cuts := cutsBySegment[seg.ID]

		if opts.StrictCuts {
			for _, cut := range cuts {
				if cut.Start < seg.Start || cut.End > seg.End {
					return nil, fmt.Errorf("segment %s: cut [%.2f, %.2f) outside span [%.2f, %.2f)",
						seg.ID, cut.Start, cut.End, seg.Start, seg.End)
				}
			}
		}

		for _, keep := range Subtract(span, cuts) {
			if keep.End-keep.Start < minKeepDuration {
				continue
			}
			entries = append(entries, EditEntry{
				SegmentID: seg.ID,
				Start:     keep.Start,
				End:       keep.End,
			})
		}
	}

	return entries, nil
}

// TotalDuration returns the edited episode's duration: the sum of all entry
// durations.
func TotalDuration(entries []EditEntry) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.End - e.Start
	}
	return total
}
