package generator

import (
	"fmt"
	"sync"

	"github.com/eteps/study-flow/internal/config"
	"github.com/eteps/study-flow/internal/logger"
)

type implGenerator struct {
	cfg     config.GeminiConfig
	apiKeys []string
	prompts Prompts
	logger  logger.Logger

	// Watch mode shares one generator across goroutines, so the rotation
	// cursor is guarded.
	mu         sync.Mutex
	currentKey int
}

// New creates a Generator backed by the Gemini API. It rotates through the
// supplied API keys when one runs out of quota.
func New(cfg config.GeminiConfig, apiKeys []string, prompts Prompts, log logger.Logger) (Generator, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("%w: no API keys", ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name is empty", ErrInvalidConfig)
	}
	if err := prompts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &implGenerator{
		cfg:     cfg,
		apiKeys: apiKeys,
		prompts: prompts,
		logger:  log,
	}, nil
}
