package conversation

import (
	"github.com/nguyentantai21042004/skill-flow/internal/audio"
	"github.com/nguyentantai21042004/skill-flow/internal/diarizer"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
	"github.com/nguyentantai21042004/skill-flow/internal/memory"
	"github.com/nguyentantai21042004/skill-flow/internal/transcriber"
)

// Options tunes the pipeline.
type Options struct {
	TempDir     string
	MaxSpeakers int
	ContextSize int
}

type implAnalyzer struct {
	opts        Options
	converter   audio.Converter
	transcriber transcriber.Transcriber
	diarizer    diarizer.Diarizer
	memory      memory.Store
	logger      logger.Logger
	newID       func() string
}

// New wires the pipeline stages together.
func New(opts Options, conv audio.Converter, tr transcriber.Transcriber, d diarizer.Diarizer, mem memory.Store, log logger.Logger) Analyzer {
	if opts.MaxSpeakers <= 0 {
		opts.MaxSpeakers = diarizer.DefaultMaxSpeakers
	}
	if opts.ContextSize <= 0 {
		opts.ContextSize = 3
	}
	return &implAnalyzer{
		opts:        opts,
		converter:   conv,
		transcriber: tr,
		diarizer:    d,
		memory:      mem,
		logger:      log,
		newID:       newRequestID,
	}
}
