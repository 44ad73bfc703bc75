package processor

import (
	"github.com/eteps/study-flow/internal/config"
	"github.com/eteps/study-flow/internal/generator"
	"github.com/eteps/study-flow/internal/logger"
	"github.com/eteps/study-flow/pkg/executor"
)

type implProcessor struct {
	cfg       *config.Config
	executor  executor.Executor
	generator generator.Generator
	logger    logger.Logger
}

// New creates a new Processor instance.
func New(cfg *config.Config, exec executor.Executor, gen generator.Generator, log logger.Logger) Processor {
	return &implProcessor{
		cfg:       cfg,
		executor:  exec,
		generator: gen,
		logger:    log,
	}
}
