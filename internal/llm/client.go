// Package llm wraps the remote generation service. Two request shapes are
// exposed: a blocking completion used for direction-label resolution, and a
// streaming completion used for artifact bodies and variation batches. The
// package never retries beyond transport-level backoff; retry policy belongs
// to callers.
package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when no credential could be resolved from config
// or environment.
var ErrNoAPIKey = errors.New("no API key configured")

// Client is the interface consumed by the generation engine.
type Client interface {
	// Complete sends a prompt with an optional system instruction and
	// returns the full response text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Stream sends a prompt and returns incremental text deltas. The content
	// channel closes when the stream ends; at most one error is delivered on
	// the error channel before it closes.
	Stream(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error)
}

// Provider identifies a generation service backend.
type Provider string

const (
	// ProviderGemini talks to the Gemini REST API over SSE.
	ProviderGemini Provider = "gemini"
	// ProviderGenAI talks to Gemini through the official Go SDK.
	ProviderGenAI Provider = "genai"
)
