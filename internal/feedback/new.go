package feedback

import (
	"sync"

	"github.com/nguyentantai21042004/debate-flow/internal/logger"
)

type implGenerator struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
}

// New creates a Generator that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) Generator {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGenerator{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
	}
}
