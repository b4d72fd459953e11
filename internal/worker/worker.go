package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/analyze"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/config"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/fillers"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/transcript"
)

// Options configures a pipeline run.
type Options struct {
	TranscriptPath string
	OutputPath     string
	NoAsync        bool
	Analyzer       analyze.Analyzer
	Config         *config.Config
}

// EditList is the run's output document: the edit decision list plus the
// durations callers display and validate against.
type EditList struct {
	SourceDuration float64              `json:"source_duration"`
	TargetDuration float64              `json:"target_duration"`
	EditedDuration float64              `json:"edited_duration"`
	Entries        []timeline.EditEntry `json:"entries"`
}

// Run executes the full edit pipeline for one episode: ingest, per-segment
// analysis, chunking, selection, cut reconciliation, and EDL output.
//
// Run itself is stateless; callers wanting at-most-one run per project must
// enforce that themselves.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		base := strings.TrimSuffix(opts.TranscriptPath, filepath.Ext(opts.TranscriptPath))
		outputPath = base + ".edl.json"
	}

	slog.Info("processing transcript", "input", filepath.Base(opts.TranscriptPath))

	tr, err := transcript.Load(opts.TranscriptPath)
	if err != nil {
		return err
	}
	slog.Info("transcript loaded",
		"segments", len(tr.Segments),
		"duration_sec", fmt.Sprintf("%.1f", tr.Duration))

	language := cfg.Language
	if tr.Language != "" {
		language = tr.Language
	}

	chunkOpts := timeline.ChunkOptions{
		MinDuration: cfg.MinChunkDuration,
		MaxDuration: cfg.MaxChunkDuration,
	}
	chunks, err := timeline.BuildChunks(tr.Segments, chunkOpts)
	if err != nil {
		return err
	}
	if !timeline.ValidateChunks(chunks) {
		return fmt.Errorf("chunk sequence failed validation")
	}
	slog.Info("chunks built", "count", len(chunks))

	var scored []timeline.ScoredSegment
	if !opts.NoAsync && len(tr.Segments) > 1 {
		scored, err = analyzeConcurrent(ctx, tr.Segments, opts.Analyzer, cfg)
	} else {
		scored, err = analyzeSequential(ctx, tr.Segments, opts.Analyzer)
	}
	if err != nil {
		return fmt.Errorf("segment analysis: %w", err)
	}

	target := cfg.ResolveTarget(tr.Duration)
	selected := timeline.SelectBest(scored, target)
	slog.Info("segments selected",
		"selected", len(selected),
		"of", len(tr.Segments),
		"target_sec", fmt.Sprintf("%.1f", target))

	cuts := map[string][]timeline.Cut{}
	if cfg.CutFillers {
		cuts = fillers.DetectAll(selected, language)
		slog.Info("filler cuts detected",
			"segments_with_cuts", len(cuts),
			"language", fillers.Normalize(language))
	}

	entries, err := timeline.Assemble(selected, cuts, timeline.AssembleOptions{StrictCuts: cfg.StrictCuts})
	if err != nil {
		return err
	}

	edl := &EditList{
		SourceDuration: tr.Duration,
		TargetDuration: target,
		EditedDuration: timeline.TotalDuration(entries),
		Entries:        entries,
	}
	if err := saveEditList(outputPath, edl); err != nil {
		return fmt.Errorf("write edit list: %w", err)
	}

	slog.Info("edit list saved",
		"path", outputPath,
		"entries", len(entries),
		"edited_sec", fmt.Sprintf("%.1f", edl.EditedDuration))
	return nil
}

// LoadEditList reads a previously saved edit list document.
func LoadEditList(path string) (*EditList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read edit list: %w", err)
	}
	var edl EditList
	if err := json.Unmarshal(data, &edl); err != nil {
		return nil, fmt.Errorf("parse edit list: %w", err)
	}
	return &edl, nil
}

func saveEditList(path string, edl *EditList) error {
	data, err := json.MarshalIndent(edl, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
