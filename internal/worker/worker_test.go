package worker

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/config"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
)

// stubAnalyzer returns canned analyses keyed by segment ID.
type stubAnalyzer struct {
	analyses map[string]timeline.Analysis
}

func (s *stubAnalyzer) Analyze(_ context.Context, seg timeline.Segment) (timeline.Analysis, error) {
	return s.analyses[seg.ID], nil
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "episode.json")
	transcriptJSON := `{
		"language": "en",
		"segments": [
			{"id": "s1", "start": 0, "end": 30, "text": "um intro talk",
			 "words": [{"word": "um", "start": 10, "end": 10.5}]},
			{"id": "s2", "start": 30, "end": 60, "text": "main topic"}
		]
	}`
	if err := os.WriteFile(transcriptPath, []byte(transcriptJSON), 0644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	cfg := config.Default()
	cfg.TargetDuration = 100
	outputPath := filepath.Join(dir, "episode.edl.json")

	opts := Options{
		TranscriptPath: transcriptPath,
		OutputPath:     outputPath,
		NoAsync:        true,
		Analyzer: &stubAnalyzer{analyses: map[string]timeline.Analysis{
			"s1": {InterestScore: 8, ClarityScore: 7},
			"s2": {InterestScore: 9, ClarityScore: 9},
		}},
		Config: cfg,
	}

	if err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	edl, err := LoadEditList(outputPath)
	if err != nil {
		t.Fatalf("LoadEditList: %v", err)
	}

	want := []timeline.EditEntry{
		{SegmentID: "s1", Start: 0, End: 10},
		{SegmentID: "s1", Start: 10.5, End: 30},
		{SegmentID: "s2", Start: 30, End: 60},
	}
	if len(edl.Entries) != len(want) {
		t.Fatalf("entries = %v, want %v", edl.Entries, want)
	}
	for i := range want {
		if edl.Entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, edl.Entries[i], want[i])
		}
	}

	if math.Abs(edl.EditedDuration-59.5) > 1e-9 {
		t.Errorf("edited duration = %f, want 59.5", edl.EditedDuration)
	}
	if edl.SourceDuration != 60 {
		t.Errorf("source duration = %f, want 60", edl.SourceDuration)
	}
}

func TestRun_FlaggedSegmentsDropped(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "episode.json")
	transcriptJSON := `{
		"language": "en",
		"segments": [
			{"id": "s1", "start": 0, "end": 20, "text": "keep"},
			{"id": "s2", "start": 20, "end": 40, "text": "tangent"}
		]
	}`
	if err := os.WriteFile(transcriptPath, []byte(transcriptJSON), 0644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	cfg := config.Default()
	cfg.TargetDuration = 100
	outputPath := filepath.Join(dir, "out.json")

	opts := Options{
		TranscriptPath: transcriptPath,
		OutputPath:     outputPath,
		NoAsync:        true,
		Analyzer: &stubAnalyzer{analyses: map[string]timeline.Analysis{
			"s1": {InterestScore: 7, ClarityScore: 7},
			"s2": {InterestScore: 9, ClarityScore: 9, IsTangent: true},
		}},
		Config: cfg,
	}

	if err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run: %v", err)
	}

	edl, err := LoadEditList(outputPath)
	if err != nil {
		t.Fatalf("LoadEditList: %v", err)
	}
	if len(edl.Entries) != 1 || edl.Entries[0].SegmentID != "s1" {
		t.Errorf("entries = %v, want only s1", edl.Entries)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MinChunkDuration = 90 // exceeds max

	err := Run(context.Background(), Options{
		TranscriptPath: "does-not-matter.json",
		Analyzer:       &stubAnalyzer{},
		Config:         cfg,
	})
	if err == nil {
		t.Fatal("expected config validation error")
	}
}
