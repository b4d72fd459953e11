package timeline

// Word is a single word with its timestamps, as produced by the
// transcription collaborator. Immutable once attached to a segment.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is one transcript segment. Segments within a transcript are
// expected to be sorted by Start and non-overlapping.
type Segment struct {
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Duration returns the segment's span length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Chunk is an editorial grouping of consecutive segments. Start equals the
// first constituent segment's start, End the last one's end, and SegmentIDs
// is never empty.
type Chunk struct {
	ID         string   `json:"id"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Text       string   `json:"text"`
	SegmentIDs []string `json:"segment_ids"`
}

// Duration returns the chunk's span length in seconds.
func (c Chunk) Duration() float64 {
	return c.End - c.Start
}

// ChunkOptions bounds the duration of chunks produced by BuildChunks.
type ChunkOptions struct {
	MinDuration float64
	MaxDuration float64
}

// Analysis holds the per-segment scores and flags supplied by the AI
// collaborator. The engine treats these as opaque inputs.
type Analysis struct {
	InterestScore int  `json:"interest_score"`
	ClarityScore  int  `json:"clarity_score"`
	IsTangent     bool `json:"is_tangent"`
	IsRepetition  bool `json:"is_repetition"`
	HasError      bool `json:"has_error"`
}

// ScoredSegment pairs a segment with its analysis for selection.
type ScoredSegment struct {
	Segment  Segment
	Analysis Analysis
}

// Cut marks a sub-interval of a segment's span for deletion, in the same
// absolute time base as the segment.
type Cut struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// KeepInterval is a maximal sub-interval of a segment's span not covered by
// any cut.
type KeepInterval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// EditEntry is one retained interval in the final edit decision list.
type EditEntry struct {
	SegmentID string  `json:"segment_id"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}
