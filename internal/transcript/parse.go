package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"

	"github.com/google/uuid"
)

// wordSegmentDuration is the target span when segments have to be rebuilt
// from flat word timestamps.
const wordSegmentDuration = 30.0

// Transcript is the normalized ingest result handed to the engine.
type Transcript struct {
	Language string
	Segments []timeline.Segment
	Duration float64
}

// rawFile mirrors the transcription collaborator's JSON output. Either
// segments or flat word timestamps may be present.
type rawFile struct {
	Language string       `json:"language"`
	Text     string       `json:"text"`
	Segments []rawSegment `json:"segments"`
	Words    []rawWord    `json:"word_timestamps"`
}

type rawSegment struct {
	ID    string    `json:"id"`
	Start float64   `json:"start"`
	End   float64   `json:"end"`
	Text  string    `json:"text"`
	Words []rawWord `json:"words"`
}

type rawWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Load reads and normalizes a transcript JSON file.
func Load(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return Parse(data)
}

// Parse normalizes raw transcript JSON: times are rounded to 2 decimal
// places (the engine never rounds internally), segments missing an ID get
// one assigned, zero-length segments are dropped, and the result is sorted
// chronologically. When the source carries only flat word timestamps,
// segments are rebuilt by grouping words into ~30 second spans.
func Parse(data []byte) (*Transcript, error) {
	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse transcript JSON: %w", err)
	}

	segments := raw.Segments
	if len(segments) == 0 && len(raw.Words) > 0 {
		segments = groupWords(raw.Words)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("transcript contains no segments or word timestamps")
	}

	out := make([]timeline.Segment, 0, len(segments))
	for _, rs := range segments {
		seg := timeline.Segment{
			ID:    rs.ID,
			Start: round2(rs.Start),
			End:   round2(rs.End),
			Text:  strings.TrimSpace(rs.Text),
		}
		if seg.Start >= seg.End {
			continue
		}
		if seg.ID == "" {
			seg.ID = uuid.NewString()
		}
		for _, rw := range rs.Words {
			seg.Words = append(seg.Words, timeline.Word{
				Word:  rw.Word,
				Start: round2(rw.Start),
				End:   round2(rw.End),
			})
		}
		out = append(out, seg)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("transcript contains no usable segments")
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})

	return &Transcript{
		Language: raw.Language,
		Segments: out,
		Duration: out[len(out)-1].End - out[0].Start,
	}, nil
}

// groupWords rebuilds segments from a flat word list by accumulating words
// until the running span reaches the target duration.
func groupWords(words []rawWord) []rawSegment {
	var segments []rawSegment
	var cur rawSegment
	var texts []string

	flush := func() {
		if len(cur.Words) == 0 {
			return
		}
		cur.Text = strings.Join(texts, " ")
		segments = append(segments, cur)
		cur = rawSegment{}
		texts = nil
	}

	for _, w := range words {
		word := strings.TrimSpace(w.Word)
		if word == "" {
			continue
		}
		if len(cur.Words) == 0 {
			cur.Start = w.Start
		}
		cur.End = w.End
		cur.Words = append(cur.Words, w)
		texts = append(texts, word)

		if w.End-cur.Start >= wordSegmentDuration {
			flush()
		}
	}
	flush()

	return segments
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
