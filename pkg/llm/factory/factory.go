// Package factory builds the configured llm.Provider from environment
// settings, so callers never branch on the backend name themselves.
package factory

import (
	"fmt"

	"github.com/fabi0dev/amby/pkg/llm"
	"github.com/fabi0dev/amby/pkg/llm/groq"
	"github.com/fabi0dev/amby/pkg/llm/ollama"
)

type Config struct {
	Provider    string
	Model       string
	GroqAPIKey  string
	GroqBaseURL string
	OllamaHost  string
}

// New returns the provider named by cfg.Provider. An empty provider name
// defaults to groq. llm.ErrNotConfigured is returned when the chosen backend
// is missing its credentials, so callers can answer with a setup hint instead
// of failing the request.
func New(cfg Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "", "groq":
		if cfg.GroqAPIKey == "" {
			return nil, llm.ErrNotConfigured
		}
		return groq.New(groq.Config{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.GroqBaseURL,
			Model:   cfg.Model,
		}), nil
	case "ollama":
		return ollama.New(ollama.Config{
			Host:  cfg.OllamaHost,
			Model: cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
