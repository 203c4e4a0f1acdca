package audio

import (
	"github.com/nguyentantai21042004/skill-flow/internal/config"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
	"github.com/nguyentantai21042004/skill-flow/pkg/executor"
)

type implConverter struct {
	cfg      config.AudioConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Converter that shells out to ffmpeg for normalization.
func New(cfg config.AudioConfig, tempDir string, exec executor.Executor, log logger.Logger) Converter {
	return &implConverter{
		cfg:      cfg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
