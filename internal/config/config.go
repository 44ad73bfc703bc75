package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env variables holding the Gemini credentials. GEMINI_API_KEYS takes
// precedence and may hold several comma-separated keys for rotation.
const (
	EnvAPIKey  = "GEMINI_API_KEY"
	EnvAPIKeys = "GEMINI_API_KEYS"
)

// ErrMissingAPIKey is returned when no Gemini credential is present in the
// environment. Generation commands check this before any network call.
var ErrMissingAPIKey = errors.New("no Gemini API key set (GEMINI_API_KEY or GEMINI_API_KEYS)")

type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	Whisper WhisperConfig `yaml:"whisper"`
	Paths   PathsConfig   `yaml:"paths"`
	Prompts PromptsConfig `yaml:"prompts"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

type GeminiConfig struct {
	Model             string  `yaml:"model"`
	Temperature       float64 `yaml:"temperature"`
	MaxOutputTokens   int     `yaml:"max_output_tokens"`
	MaxRetries        int     `yaml:"max_retries"`
	RetryDelaySeconds int     `yaml:"retry_delay_seconds"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type PathsConfig struct {
	Output    string `yaml:"output"`
	Watch     string `yaml:"watch"`
	Processed string `yaml:"processed"`
}

// PromptsConfig optionally points at files overriding the built-in prompt
// templates. Empty fields keep the defaults.
type PromptsConfig struct {
	SummaryPath    string `yaml:"summary_path"`
	FlashcardsPath string `yaml:"flashcards_path"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}

	return &cfg, nil
}

// Default returns a config with every field at its default. Used when no
// config file exists; transcription then requires the whisper paths to be
// supplied some other way.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.2
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature must be between 0 and 2, got %v", c.Gemini.Temperature)
	}
	if c.Gemini.MaxRetries == 0 {
		c.Gemini.MaxRetries = 3
	}
	if c.Gemini.MaxRetries < 0 {
		return fmt.Errorf("gemini.max_retries must not be negative, got %d", c.Gemini.MaxRetries)
	}
	if c.Gemini.RetryDelaySeconds <= 0 {
		c.Gemini.RetryDelaySeconds = 2
	}
	if c.Gemini.MaxOutputTokens < 0 {
		return fmt.Errorf("gemini.max_output_tokens must not be negative, got %d", c.Gemini.MaxOutputTokens)
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads <= 0 {
		c.Whisper.Threads = 4
	}

	if c.Paths.Output == "" {
		c.Paths.Output = "outputs"
	}
	if c.Paths.Processed == "" && c.Paths.Watch != "" {
		c.Paths.Processed = filepath.Join(c.Paths.Watch, "processed")
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// RequireWhisper checks the fields only transcription needs. Generation from
// an existing transcript works without them.
func (c *Config) RequireWhisper() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required for transcription")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required for transcription")
	}
	return nil
}

// RequireWatch checks the fields watch mode needs.
func (c *Config) RequireWatch() error {
	if c.Paths.Watch == "" {
		return fmt.Errorf("paths.watch is required for watch mode")
	}
	return nil
}

// GeminiAPIKeys reads the Gemini credentials from the environment. Several
// keys may be supplied so the generator can rotate past quota limits.
func GeminiAPIKeys() ([]string, error) {
	if v := os.Getenv(EnvAPIKeys); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) > 0 {
			return keys, nil
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return []string{v}, nil
	}
	return nil, ErrMissingAPIKey
}
