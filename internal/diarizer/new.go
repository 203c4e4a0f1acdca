package diarizer

import (
	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
)

const (
	DefaultMaxSpeakers = 2
	contextSize        = 3
)

type llmDiarizer struct {
	generator gemini.Generator
	logger    logger.Logger
}

// NewLLM creates a Diarizer that asks a language model to split the transcript.
func NewLLM(gen gemini.Generator, log logger.Logger) Diarizer {
	return &llmDiarizer{generator: gen, logger: log}
}

type acousticDiarizer struct {
	source SampleSource
	logger logger.Logger
}

// NewAcoustic creates a Diarizer that clusters MFCC features of fixed audio chunks.
func NewAcoustic(src SampleSource, log logger.Logger) Diarizer {
	return &acousticDiarizer{source: src, logger: log}
}
