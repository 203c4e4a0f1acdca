package gemini

import (
	"sync"

	"github.com/nguyentantai21042004/skill-flow/internal/logger"
)

type implGenerator struct {
	apiKeys    []string
	baseURL    string
	model      string
	logger     logger.Logger
	mu         sync.Mutex
	currentKey int
}

// New creates a Generator that rotates through the supplied Gemini API keys.
// baseURL may be empty to use the public endpoint.
func New(apiKeys []string, model, baseURL string, log logger.Logger) Generator {
	return &implGenerator{
		apiKeys: apiKeys,
		baseURL: baseURL,
		model:   model,
		logger:  log,
	}
}
