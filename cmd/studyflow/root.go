package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eteps/study-flow/internal/config"
	"github.com/eteps/study-flow/internal/generator"
	"github.com/eteps/study-flow/internal/logger"
	"github.com/eteps/study-flow/internal/processor"
	"github.com/eteps/study-flow/pkg/executor"
)

var (
	cfgFile    string
	outputDir  string
	exportDocx bool
)

var rootCmd = &cobra.Command{
	Use:   "studyflow",
	Short: "Turn reading club sessions into study aids",
	Long: `studyflow turns recorded reading club sessions into transcripts,
summaries and flashcards, using ffmpeg and whisper.cpp for transcription
and the Gemini API for generation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() error {
	// Load .env early so the API key is in the environment for every command
	_ = godotenv.Load()
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "studyflow.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "output directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&exportDocx, "docx", false, "also export .docx files")

	rootCmd.AddCommand(runCmd, extractCmd, transcribeCmd, summarizeCmd, flashcardsCmd, watchCmd)
}

// app bundles what every command needs.
type app struct {
	cfg  *config.Config
	log  logger.Logger
	exec executor.Executor
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:  cfg,
		log:  logger.New(cfg.Logging.Level),
		exec: executor.New(),
	}, nil
}

// loadConfig reads the config file, falling back to defaults when the
// default path does not exist. An explicitly passed --config must exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
			cfg = config.Default()
		} else {
			return nil, err
		}
	}

	if outputDir != "" {
		cfg.Paths.Output = outputDir
	}
	if exportDocx {
		cfg.Export.Docx = true
	}
	return cfg, nil
}

// generator builds the Gemini generator. The credential check runs first,
// before any client is constructed.
func (a *app) generator() (generator.Generator, error) {
	keys, err := config.GeminiAPIKeys()
	if err != nil {
		return nil, err
	}

	prompts, err := generator.LoadPrompts(a.cfg.Prompts)
	if err != nil {
		return nil, err
	}

	return generator.New(a.cfg.Gemini, keys, prompts, a.log)
}

// processor wires a Processor. gen may be nil for commands that never
// generate (extract, transcribe).
func (a *app) processor(gen generator.Generator) processor.Processor {
	return processor.New(a.cfg, a.exec, gen, a.log)
}
