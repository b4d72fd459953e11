package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/timeline"
)

// MediaInfo holds duration and codec information from ffprobe.
type MediaInfo struct {
	Duration float64
	Codec    string
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// ProbeMedia uses ffprobe to get media duration and audio codec.
func ProbeMedia(ctx context.Context, path string) (*MediaInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	dur, _ := strconv.ParseFloat(probe.Format.Duration, 64)

	codec := "N/A"
	if len(probe.Streams) > 0 && probe.Streams[0].CodecName != "" {
		codec = probe.Streams[0].CodecName
	}

	return &MediaInfo{Duration: dur, Codec: codec}, nil
}

// Render cuts each edit entry out of the source file and concatenates the
// pieces in list order. Boundary exactness is whatever ffmpeg stream copy
// gives us; sample-accurate trims would need re-encoding.
func Render(ctx context.Context, sourcePath string, entries []timeline.EditEntry, outputPath string) error {
	if len(entries) == 0 {
		return fmt.Errorf("edit list is empty")
	}

	workDir, err := os.MkdirTemp(filepath.Dir(outputPath), "render_parts_")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	ext := filepath.Ext(sourcePath)
	parts := make([]string, 0, len(entries))

	for i, entry := range entries {
		part := filepath.Join(workDir, fmt.Sprintf("part_%04d%s", i, ext))
		if err := extractInterval(ctx, sourcePath, entry, part); err != nil {
			return fmt.Errorf("extract entry %d/%d: %w", i+1, len(entries), err)
		}
		parts = append(parts, part)
	}

	listPath := filepath.Join(workDir, "concat.txt")
	if err := writeConcatList(listPath, parts); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	slog.Info("concatenating parts", "count", len(parts), "output", filepath.Base(outputPath))

	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w\n%s", err, string(out))
	}
	return nil
}

func extractInterval(ctx context.Context, sourcePath string, entry timeline.EditEntry, outputPath string) error {
	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-ss", formatSeconds(entry.Start),
		"-to", formatSeconds(entry.End),
		"-i", sourcePath,
		"-c", "copy",
		"-y",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg trim failed: %w\n%s", err, string(out))
	}
	return nil
}

// writeConcatList writes an ffmpeg concat demuxer file listing the parts.
func writeConcatList(path string, parts []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, part := range parts {
		if _, err := fmt.Fprintf(f, "file '%s'\n", part); err != nil {
			return err
		}
	}
	return nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
