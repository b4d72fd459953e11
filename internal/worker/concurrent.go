package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/analyze"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/config"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// analyzeConcurrent scores segments with bounded parallelism and rate
// limiting. Each slot in the result slice is written by exactly one
// goroutine, so no locking is needed around it.
func analyzeConcurrent(ctx context.Context, segments []timeline.Segment, analyzer analyze.Analyzer, cfg *config.Config) ([]timeline.ScoredSegment, error) {
	slog.Info("starting concurrent analysis",
		"segments", len(segments),
		"max_concurrent", cfg.MaxConcurrentAnalyses,
		"rate_limit_rpm", cfg.APIRateLimitPerMin)

	// Rate limiter: tokens per second = RPM / 60.
	limiter := rate.NewLimiter(rate.Limit(float64(cfg.APIRateLimitPerMin)/60.0), 1)

	results := make([]timeline.ScoredSegment, len(segments))
	done := make([]bool, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrentAnalyses)

	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			a, err := analyzeWithRetry(gctx, analyzer, seg, cfg.MaxRetries)
			if err != nil {
				return fmt.Errorf("segment %d/%d: %w", i+1, len(segments), err)
			}

			results[i] = timeline.ScoredSegment{Segment: seg, Analysis: a}
			done[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		completed := 0
		for _, d := range done {
			if d {
				completed++
			}
		}
		if completed > 0 {
			slog.Warn("concurrent analysis partially failed, falling back to sequential",
				"completed", completed, "total", len(segments), "err", err)
			return resumeSequential(ctx, segments, analyzer, results, done)
		}
		return nil, err
	}

	return results, nil
}

// analyzeWithRetry retries transient analysis failures with exponential
// backoff (1s, 2s, 4s...).
func analyzeWithRetry(ctx context.Context, analyzer analyze.Analyzer, seg timeline.Segment, maxRetries int) (timeline.Analysis, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return timeline.Analysis{}, ctx.Err()
		default:
		}

		a, err := analyzer.Analyze(ctx, seg)
		if err == nil {
			return a, nil
		}
		lastErr = err

		if attempt < maxRetries-1 {
			backoff := 1 << uint(attempt)
			slog.Warn("segment analysis failed, retrying",
				"segment", seg.ID,
				"attempt", attempt+1,
				"backoff_sec", backoff,
				"err", err)

			timer := time.NewTimer(time.Duration(backoff) * time.Second)
			select {
			case <-ctx.Done():
				timer.Stop()
				return timeline.Analysis{}, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return timeline.Analysis{}, fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// resumeSequential finishes the segments the concurrent pass did not
// complete, one at a time.
func resumeSequential(ctx context.Context, segments []timeline.Segment, analyzer analyze.Analyzer, results []timeline.ScoredSegment, done []bool) ([]timeline.ScoredSegment, error) {
	for i, seg := range segments {
		if done[i] {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Info("sequential fallback analyzing segment",
			"segment", fmt.Sprintf("%d/%d", i+1, len(segments)))

		a, err := analyzer.Analyze(ctx, seg)
		if err != nil {
			return nil, fmt.Errorf("sequential fallback segment %d/%d: %w", i+1, len(segments), err)
		}
		results[i] = timeline.ScoredSegment{Segment: seg, Analysis: a}
	}
	return results, nil
}
