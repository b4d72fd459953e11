package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/analyze"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
)

// analyzeSequential scores segments one at a time, in transcript order.
func analyzeSequential(ctx context.Context, segments []timeline.Segment, analyzer analyze.Analyzer) ([]timeline.ScoredSegment, error) {
	results := make([]timeline.ScoredSegment, 0, len(segments))

	for i, seg := range segments {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		a, err := analyzer.Analyze(ctx, seg)
		if err != nil {
			return nil, fmt.Errorf("segment %d/%d failed: %w", i+1, len(segments), err)
		}
		results = append(results, timeline.ScoredSegment{Segment: seg, Analysis: a})

		slog.Debug("segment analyzed",
			"segment", fmt.Sprintf("%d/%d", i+1, len(segments)),
			"score", fmt.Sprintf("%.1f", a.Score()))
	}

	return results, nil
}
