package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"mockforge/internal/config"
)

// NewClientFromConfig builds a Client from the resolved user config.
// Priority for the credential: config api_key, then GEMINI_API_KEY, then
// GOOGLE_API_KEY. Provider selection falls back to the SSE client.
func NewClientFromConfig(ctx context.Context, cfg *config.Config) (Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	switch Provider(cfg.Provider) {
	case ProviderGenAI:
		return NewGenAIClient(ctx, apiKey, cfg.Model, cfg.Temperature)
	case ProviderGemini, "":
		gc := DefaultGeminiConfig(apiKey)
		if cfg.Model != "" {
			gc.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			gc.BaseURL = cfg.BaseURL
		}
		if cfg.Temperature > 0 {
			gc.Temperature = cfg.Temperature
		}
		if d, err := time.ParseDuration(cfg.Timeout); err == nil && d > 0 {
			gc.Timeout = d
		}
		return NewGeminiClientWithConfig(gc), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
}
