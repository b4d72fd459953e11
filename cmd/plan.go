package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/marcosremar/autopodcast-editor-sub002/internal/analyze"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/config"
	"github.com/marcosremar/autopodcast-editor-sub002/internal/worker"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <transcript.json>",
	Short: "Compute an edit decision list from a transcript",
	Long: `Plan reads a timestamped transcript JSON file, scores its segments (via an
LLM API or a pre-computed analysis file), selects the best content under the
target duration budget, removes filler-word intervals, and writes the
resulting edit decision list as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

var (
	configPath   string
	analysisPath string
	output       string
	noAsync      bool

	// Edit tuning flags.
	minChunk    float64
	maxChunk    float64
	targetSec   float64
	targetRatio float64
	language    string
	noFillers   bool
	strictCuts  bool
)

func init() {
	defaults := config.Default()

	planCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	planCmd.Flags().StringVarP(&analysisPath, "analysis", "a", "", "pre-computed analysis JSON (skips LLM calls)")
	planCmd.Flags().StringVarP(&output, "output", "o", "", "output EDL path (default: <input>.edl.json)")
	planCmd.Flags().BoolVar(&noAsync, "no-async", false, "disable concurrent segment analysis")

	planCmd.Flags().Float64Var(&minChunk, "min-chunk", defaults.MinChunkDuration, "minimum chunk duration in seconds")
	planCmd.Flags().Float64Var(&maxChunk, "max-chunk", defaults.MaxChunkDuration, "maximum chunk duration in seconds")
	planCmd.Flags().Float64Var(&targetSec, "target-duration", 0, "target edit duration in seconds (overrides --target-ratio)")
	planCmd.Flags().Float64Var(&targetRatio, "target-ratio", defaults.TargetRatio, "target edit duration as a fraction of the source")
	planCmd.Flags().StringVarP(&language, "language", "l", defaults.Language, "filler-word language (pt, en)")
	planCmd.Flags().BoolVar(&noFillers, "no-fillers", false, "keep filler words")
	planCmd.Flags().BoolVar(&strictCuts, "strict-cuts", false, "reject cuts outside their segment instead of clamping")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	transcriptPath := args[0]

	if _, err := os.Stat(transcriptPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", transcriptPath)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override the config file.
	if cmd.Flags().Changed("min-chunk") {
		cfg.MinChunkDuration = minChunk
	}
	if cmd.Flags().Changed("max-chunk") {
		cfg.MaxChunkDuration = maxChunk
	}
	if cmd.Flags().Changed("target-duration") {
		cfg.TargetDuration = targetSec
	}
	if cmd.Flags().Changed("target-ratio") {
		cfg.TargetRatio = targetRatio
	}
	if cmd.Flags().Changed("language") {
		cfg.Language = language
	}
	if noFillers {
		cfg.CutFillers = false
	}
	if strictCuts {
		cfg.StrictCuts = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var analyzer analyze.Analyzer
	if analysisPath != "" {
		fs, err := analyze.LoadFile(analysisPath)
		if err != nil {
			return err
		}
		analyzer = fs
	} else {
		analyzer = analyze.NewClient(analyze.Config{})
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		TranscriptPath: transcriptPath,
		OutputPath:     output,
		NoAsync:        noAsync,
		Analyzer:       analyzer,
		Config:         cfg,
	}

	if err := worker.Run(ctx, opts); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
