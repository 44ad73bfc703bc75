package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eteps/study-flow/internal/config"
	"github.com/eteps/study-flow/internal/logger"
	"github.com/eteps/study-flow/internal/processor"
	"github.com/eteps/study-flow/internal/source"
	"github.com/eteps/study-flow/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run <recording>",
	Short: "Full workflow: extract audio, transcribe, summarize, make flashcards",
	Long: `Runs the whole pipeline for one recording, or for every recording in a
directory. Artifacts land in the output directory: audio.wav,
transcription.txt, summary.md and flashcards.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.cfg.RequireWhisper(); err != nil {
			return err
		}
		if err := a.exec.Available("ffmpeg"); err != nil {
			return err
		}

		gen, err := a.generator()
		if err != nil {
			return err
		}
		proc := a.processor(gen)
		ctx := cmd.Context()

		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return proc.Run(ctx, args[0], a.cfg.Paths.Output)
		}

		recordings, err := source.DiscoverRecordings(args[0])
		if err != nil {
			return err
		}
		if len(recordings) == 0 {
			return fmt.Errorf("no recordings found in %s", args[0])
		}
		for _, rec := range recordings {
			if err := proc.Run(ctx, rec, filepath.Join(a.cfg.Paths.Output, stem(rec))); err != nil {
				return err
			}
		}
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <recording>",
	Short: "Extract audio only",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.exec.Available("ffmpeg"); err != nil {
			return err
		}

		_, err = a.processor(nil).ExtractAudio(cmd.Context(), args[0], a.cfg.Paths.Output)
		return err
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <recording>",
	Short: "Extract audio and transcribe it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.cfg.RequireWhisper(); err != nil {
			return err
		}
		if err := a.exec.Available("ffmpeg"); err != nil {
			return err
		}

		_, err = a.processor(nil).Transcribe(cmd.Context(), args[0], a.cfg.Paths.Output)
		return err
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [transcript]",
	Short: "Generate a summary from a transcript file",
	Long: `Generates a markdown summary from a transcript (.txt, .srt, .md, .html).
Without an argument, the transcription from an earlier run is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		gen, err := a.generator()
		if err != nil {
			return err
		}

		return a.processor(gen).Summarize(cmd.Context(), transcriptArg(a.cfg, args), a.cfg.Paths.Output)
	},
}

var reuseSummary bool

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards [transcript]",
	Short: "Generate flashcards from a transcript file",
	Long: `Generates a two-column flashcards CSV from a transcript. An existing
summary.md in the output directory feeds the card prompt; pass
--reuse-summary=false to regenerate the summary as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		gen, err := a.generator()
		if err != nil {
			return err
		}

		return a.processor(gen).Flashcards(cmd.Context(), transcriptArg(a.cfg, args), a.cfg.Paths.Output, reuseSummary)
	},
}

var watchConcurrency int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a drop directory and process new sessions",
	Long: `Monitors paths.watch for new recordings and transcripts. Recordings go
through the full workflow, transcripts straight to generation. Each file
gets its own subdirectory under the output directory and is moved to
paths.processed when done.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.cfg.RequireWatch(); err != nil {
			return err
		}
		if err := a.cfg.RequireWhisper(); err != nil {
			return err
		}
		if err := a.exec.Available("ffmpeg"); err != nil {
			return err
		}
		if err := ensureDirectories(a.cfg); err != nil {
			return err
		}

		gen, err := a.generator()
		if err != nil {
			return err
		}
		proc := a.processor(gen)

		w, err := watcher.New(a.cfg.Paths.Watch, watchHandler(a.cfg, proc, a.log), a.log, watchConcurrency)
		if err != nil {
			return err
		}
		defer w.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a.log.Info(ctx, "========================================")
		a.log.Info(ctx, "studyflow watch mode")
		a.log.Info(ctx, "========================================")
		a.log.Info(ctx, "System: %s/%s, %d cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
		a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Watch)
		a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
		a.log.Info(ctx, "Press Ctrl+C to stop")

		if err := w.Start(ctx); !errors.Is(err, context.Canceled) {
			return err
		}

		a.log.Info(cmd.Context(), "Shutdown complete")
		return nil
	},
}

func init() {
	flashcardsCmd.Flags().BoolVar(&reuseSummary, "reuse-summary", true, "reuse an existing summary.md instead of regenerating it")
	watchCmd.Flags().IntVar(&watchConcurrency, "concurrency", 2, "max sessions processed at once")
}

// watchHandler routes a detected file to the right pipeline operation and
// moves it out of the watch directory afterwards.
func watchHandler(cfg *config.Config, proc processor.Processor, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		destDir := filepath.Join(cfg.Paths.Output, stem(path))

		var err error
		switch {
		case source.IsRecording(path):
			err = proc.Run(ctx, path, destDir)
		case source.IsTranscript(path):
			err = proc.Flashcards(ctx, path, destDir, false)
		default:
			return nil
		}
		if err != nil {
			return err
		}

		return moveToProcessed(ctx, cfg, log, path)
	}
}

// moveToProcessed moves a handled file out of the watch directory so it is
// not picked up again. Move failures only warn; the artifacts are already
// written.
func moveToProcessed(ctx context.Context, cfg *config.Config, log logger.Logger, path string) error {
	if err := os.MkdirAll(cfg.Paths.Processed, 0755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}

	dest := filepath.Join(cfg.Paths.Processed, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		log.Warn(ctx, "Failed to move %s to processed: %v", path, err)
		return nil
	}

	log.Info(ctx, "Moved %s -> %s", path, dest)
	return nil
}

// transcriptArg resolves the transcript path for generation commands,
// defaulting to the transcription of an earlier run.
func transcriptArg(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return filepath.Join(cfg.Paths.Output, processor.TranscriptionFile)
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Watch, cfg.Paths.Output, cfg.Paths.Processed}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
