package imaging

import (
	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
)

type implDescriber struct {
	generator gemini.Generator
	logger    logger.Logger
}

// New creates a Describer. gen should be bound to a vision model.
func New(gen gemini.Generator, log logger.Logger) Describer {
	return &implDescriber{
		generator: gen,
		logger:    log,
	}
}
