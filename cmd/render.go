package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/media"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/worker"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <edl.json> <source-media>",
	Short: "Render an edit decision list against the source media",
	Long: `Render executes a previously computed edit decision list with ffmpeg:
each retained interval is trimmed out of the source file and the pieces are
concatenated in order.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

var renderOutput string

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output media path (default: <source>_edited<ext>)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	edlPath, sourcePath := args[0], args[1]

	if !media.Available() {
		return fmt.Errorf("ffmpeg not found on PATH")
	}
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", sourcePath)
	}

	edl, err := worker.LoadEditList(edlPath)
	if err != nil {
		return err
	}
	if len(edl.Entries) == 0 {
		return fmt.Errorf("edit list %s has no entries", edlPath)
	}

	outputPath := renderOutput
	if outputPath == "" {
		ext := filepath.Ext(sourcePath)
		outputPath = strings.TrimSuffix(sourcePath, ext) + "_edited" + ext
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if info, err := media.ProbeMedia(ctx, sourcePath); err == nil {
		slog.Info("source media",
			"duration_sec", fmt.Sprintf("%.1f", info.Duration),
			"codec", info.Codec)
	}

	slog.Info("rendering edit",
		"entries", len(edl.Entries),
		"edited_sec", fmt.Sprintf("%.1f", edl.EditedDuration))

	if err := media.Render(ctx, sourcePath, edl.Entries, outputPath); err != nil {
		return err
	}

	slog.Info("edited media saved", "path", outputPath)
	return nil
}
