package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/debate-flow/internal/config"
	"github.com/nguyentantai21042004/debate-flow/internal/feedback"
	"github.com/nguyentantai21042004/debate-flow/internal/logger"
	"github.com/nguyentantai21042004/debate-flow/internal/processor"
	"github.com/nguyentantai21042004/debate-flow/internal/speech"
	"github.com/nguyentantai21042004/debate-flow/internal/transcript"
	"github.com/nguyentantai21042004/debate-flow/internal/watcher"
	"github.com/nguyentantai21042004/debate-flow/pkg/executor"
)

type app struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "debate-flow",
		Short:         "Detect the opening speech in diarized debate transcripts and generate feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "path to config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "watch",
			Short: "Watch the input folder and process new transcripts",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.watch(cmd.Context())
			},
		},
		a.detectCmd(),
		a.importCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

func (a *app) detector() *speech.Detector {
	return speech.NewDetector(speech.Options{
		GapToleranceMs:          a.cfg.Segmentation.GapToleranceMs,
		SubstantiveThresholdSec: a.cfg.Segmentation.SubstantiveThresholdSec,
	})
}

func (a *app) store() (*transcript.Store, error) {
	return transcript.NewStore(a.cfg.Database.URL, a.cfg.Database.ServiceKey, a.cfg.Database.Table)
}

func (a *app) watch(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := a.cfg

	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "Debate Feedback Pipeline")
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	a.log.Info(ctx, "Gap tolerance: %dms, substantive speech: >%ds",
		cfg.Segmentation.GapToleranceMs, cfg.Segmentation.SubstantiveThresholdSec)
	a.log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	var gen feedback.Generator
	if len(cfg.Gemini.APIKeys) > 0 {
		gen = feedback.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, a.log)
		a.log.Info(ctx, "Feedback: %s with %d API key(s)", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	} else {
		a.log.Warn(ctx, "No Gemini API keys configured, reports will not include feedback")
	}

	proc := processor.New(cfg, executor.New(), a.log, gen)

	w, err := watcher.New(cfg.Paths.Input, proc.Process, a.log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	a.log.Info(ctx, "Output: %s", cfg.Paths.Output)
	a.log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}

	a.log.Info(context.Background(), "Pipeline stopped")
	return nil
}

func (a *app) detectCmd() *cobra.Command {
	var transcriptID int64

	cmd := &cobra.Command{
		Use:   "detect [transcript.json]",
		Short: "Print the primary speech of a transcript file or stored transcript",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var words []speech.WordInterval
			switch {
			case len(args) == 1:
				f, err := transcript.LoadFile(args[0])
				if err != nil {
					return err
				}
				words = f.Intervals()
			case transcriptID > 0:
				st, err := a.store()
				if err != nil {
					return err
				}
				if words, err = st.Words(ctx, transcriptID); err != nil {
					return err
				}
			default:
				return fmt.Errorf("pass a transcript file or --transcript-id")
			}

			det, err := a.detector().Detect(words)
			if err != nil {
				return err
			}
			for i, b := range det.Substantive {
				a.log.Info(ctx, "%d. %s", i+1, b)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Speaker     string  `json:"speaker"`
				StartMs     int64   `json:"start_ms"`
				EndMs       int64   `json:"end_ms"`
				DurationSec float64 `json:"duration_sec"`
			}{det.Primary.Speaker, det.Primary.StartMs, det.Primary.EndMs, det.Primary.DurationSec()})
		},
	}
	cmd.Flags().Int64Var(&transcriptID, "transcript-id", 0, "read words from the transcript_words table")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var transcriptID int64

	cmd := &cobra.Command{
		Use:   "import <transcript.json>",
		Short: "Store a transcript file's words in the transcript_words table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := transcript.LoadFile(args[0])
			if err != nil {
				return err
			}
			if transcriptID == 0 {
				transcriptID = f.TranscriptID
			}
			if transcriptID == 0 {
				return fmt.Errorf("--transcript-id is required when the file has none")
			}

			st, err := a.store()
			if err != nil {
				return err
			}
			words := f.Intervals()
			if err := st.SaveWords(ctx, transcriptID, words); err != nil {
				return err
			}
			a.log.Info(ctx, "Stored %d words for transcript %d", len(words), transcriptID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&transcriptID, "transcript-id", 0, "transcript id to store the words under")
	return cmd
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Processing,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
