package transcriber

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/skill-flow/internal/config"
	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
)

type implTranscriber struct {
	client   *openai.Client
	model    string
	language string
	fallback gemini.Generator
	logger   logger.Logger
}

// New creates a Transcriber backed by an OpenAI-compatible speech-to-text API,
// degrading to Gemini when that API is unavailable.
func New(cfg config.TranscriptionConfig, fallback gemini.Generator, log logger.Logger) Transcriber {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &implTranscriber{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    cfg.Model,
		language: cfg.Language,
		fallback: fallback,
		logger:   log,
	}
}
