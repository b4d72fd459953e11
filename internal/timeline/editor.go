package timeline

import "strings"

// MergeChunks combines a run of chunks into one spanning the first chunk's
// start to the last chunk's end. The second return is false for empty input.
//
// Precondition: the chunks are contiguous and ordered. MergeChunks does not
// re-check this; callers handling user-driven edits should run ValidateChunks
// first.
func MergeChunks(chunks []Chunk) (Chunk, bool) {
	if len(chunks) == 0 {
		return Chunk{}, false
	}

	texts := make([]string, 0, len(chunks))
	var segmentIDs []string
	for _, c := range chunks {
		texts = append(texts, c.Text)
		segmentIDs = append(segmentIDs, c.SegmentIDs...)
	}

	return Chunk{
		ID:         chunks[0].ID,
		Start:      chunks[0].Start,
		End:        chunks[len(chunks)-1].End,
		Text:       strings.Join(texts, " "),
		SegmentIDs: segmentIDs,
	}, true
}

// SplitChunkAtTime splits a chunk into two at time t. Segments are assigned
// whole to a side by comparing their midpoint to t, so a segment straddling t
// is never itself cut; when that segment is long, the right chunk's start can
// land past t. The third return is false when t is outside the chunk's span
// or the partition would leave one side empty.
//
// The segments slice must contain every segment referenced by the chunk;
// unrelated segments are ignored.
func SplitChunkAtTime(chunk Chunk, segments []Segment, t float64) (Chunk, Chunk, bool) {
	if t <= chunk.Start || t >= chunk.End {
		return Chunk{}, Chunk{}, false
	}

	byID := make(map[string]Segment, len(segments))
	for _, seg := range segments {
		byID[seg.ID] = seg
	}

	var left, right []Segment
	for _, id := range chunk.SegmentIDs {
		seg, ok := byID[id]
		if !ok {
			return Chunk{}, Chunk{}, false
		}
		mid := (seg.Start + seg.End) / 2
		if mid < t {
			left = append(left, seg)
		} else {
			right = append(right, seg)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		return Chunk{}, Chunk{}, false
	}

	return chunkFromSegments(chunk.ID+"-a", left), chunkFromSegments(chunk.ID+"-b", right), true
}

func chunkFromSegments(id string, segs []Segment) Chunk {
	start := segs[0].Start
	end := segs[0].End
	texts := make([]string, 0, len(segs))
	ids := make([]string, 0, len(segs))

	for _, seg := range segs {
		if seg.Start < start {
			start = seg.Start
		}
		if seg.End > end {
			end = seg.End
		}
		texts = append(texts, seg.Text)
		ids = append(ids, seg.ID)
	}

	return Chunk{
		ID:         id,
		Start:      start,
		End:        end,
		Text:       strings.Join(texts, " "),
		SegmentIDs: ids,
	}
}
