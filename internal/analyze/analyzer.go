package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
)

// Analyzer scores a transcript segment. Implementations are the external AI
// collaborator boundary; the engine only ever sees the resulting Analysis.
type Analyzer interface {
	Analyze(ctx context.Context, seg timeline.Segment) (timeline.Analysis, error)
}

// FileSource serves pre-computed analyses from a JSON file keyed by segment
// ID. Used for offline runs and reproducible tests.
type FileSource struct {
	analyses map[string]timeline.Analysis
}

// LoadFile reads an analysis JSON file of the form {"<segment-id>": {...}}.
func LoadFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis file: %w", err)
	}

	var analyses map[string]timeline.Analysis
	if err := json.Unmarshal(data, &analyses); err != nil {
		return nil, fmt.Errorf("parse analysis file: %w", err)
	}

	return &FileSource{analyses: analyses}, nil
}

// Analyze returns the stored analysis for the segment.
func (f *FileSource) Analyze(_ context.Context, seg timeline.Segment) (timeline.Analysis, error) {
	a, ok := f.analyses[seg.ID]
	if !ok {
		return timeline.Analysis{}, fmt.Errorf("no analysis for segment %s", seg.ID)
	}
	return a, nil
}
