package report

import (
	"time"

	"github.com/nguyentantai21042004/skill-flow/internal/logger"
)

type implWriter struct {
	outputDir string
	docx      bool
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Writer that always writes JSON and, when docx is set, a
// Word report next to it.
func New(outputDir string, docx bool, log logger.Logger) Writer {
	return &implWriter{
		outputDir: outputDir,
		docx:      docx,
		logger:    log,
		now:       time.Now,
	}
}
