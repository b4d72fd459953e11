package timeline

import (
	"fmt"
	"strings"
)

// BuildChunks groups ordered transcript segments into chunks whose durations
// target the [MinDuration, MaxDuration] envelope.
//
// When a pending chunk is still under MinDuration but absorbing the next
// segment would push it past MaxDuration, the segment is merged anyway:
// satisfying the minimum takes priority over enforcing the maximum. The final
// chunk may fall below MinDuration since there is nothing left to merge with.
func BuildChunks(segments []Segment, opts ChunkOptions) ([]Chunk, error) {
	if opts.MinDuration > opts.MaxDuration {
		return nil, fmt.Errorf("invalid chunk options: min duration %.2f exceeds max duration %.2f",
			opts.MinDuration, opts.MaxDuration)
	}
	if len(segments) == 0 {
		return nil, nil
	}

	var chunks []Chunk
	pending := newPendingChunk(segments[0])

	for _, seg := range segments[1:] {
		pendingDuration := pending.end - pending.start
		wouldBeDuration := seg.End - pending.start

		switch {
		case wouldBeDuration <= opts.MaxDuration:
			pending.absorb(seg)
		case pendingDuration >= opts.MinDuration:
			chunks = append(chunks, pending.finish(len(chunks)))
			pending = newPendingChunk(seg)
		default:
			// Still under the minimum: exceed the maximum rather than
			// emit a too-short chunk.
			pending.absorb(seg)
		}
	}

	chunks = append(chunks, pending.finish(len(chunks)))
	return chunks, nil
}

type pendingChunk struct {
	start      float64
	end        float64
	texts      []string
	segmentIDs []string
}

func newPendingChunk(seg Segment) pendingChunk {
	return pendingChunk{
		start:      seg.Start,
		end:        seg.End,
		texts:      []string{seg.Text},
		segmentIDs: []string{seg.ID},
	}
}

func (p *pendingChunk) absorb(seg Segment) {
	p.end = seg.End
	p.texts = append(p.texts, seg.Text)
	p.segmentIDs = append(p.segmentIDs, seg.ID)
}

func (p pendingChunk) finish(index int) Chunk {
	return Chunk{
		ID:         fmt.Sprintf("chunk-%03d", index+1),
		Start:      p.start,
		End:        p.end,
		Text:       strings.Join(p.texts, " "),
		SegmentIDs: p.segmentIDs,
	}
}
