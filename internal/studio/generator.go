package studio

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"mockforge/internal/llm"
	"mockforge/internal/logging"
)

// Generator drives one streaming generation request for one artifact:
// streams text into the artifact's html (observable mid-generation), then
// normalizes and settles the status. A failure never propagates to sibling
// artifacts; the batch join in the coordinator tolerates it.
type Generator struct {
	client llm.Client
	state  *State
}

// NewGenerator creates a generator bound to the shared state.
func NewGenerator(client llm.Client, state *State) *Generator {
	return &Generator{client: client, state: state}
}

// Generate runs one artifact end to end. The artifact moves streaming ->
// complete (non-empty normalized output) or streaming -> error (transport
// failure or empty output). If the parent session disappears mid-stream the
// remaining updates are dropped and the stream is drained.
func (g *Generator) Generate(ctx context.Context, sessionID, artifactID, prompt, direction string) {
	log := logging.Get(logging.CategoryStudio).With(
		zap.String("session", sessionID),
		zap.String("artifact", artifactID),
		zap.String("direction", direction),
	)

	content, errs := g.client.Stream(ctx, artifactSystemPrompt, artifactPrompt(prompt, direction))

	var accumulated strings.Builder
	orphaned := false

	for delta := range content {
		accumulated.WriteString(delta)
		if orphaned {
			continue
		}
		err := g.state.AppendArtifactHTML(sessionID, artifactID, delta)
		if errors.Is(err, ErrSessionNotFound) {
			// History was reset under us; keep draining so the stream
			// goroutine can finish, but stop publishing.
			log.Debug("dropping updates for orphaned session")
			orphaned = true
		}
	}

	if err := <-errs; err != nil {
		log.Warn("artifact stream failed", zap.Error(err))
		if !orphaned {
			_ = g.state.FailArtifact(sessionID, artifactID)
		}
		return
	}
	if orphaned {
		return
	}

	html := NormalizeHTML(accumulated.String())
	status := StatusComplete
	if html == "" {
		status = StatusError
	}
	if err := g.state.FinalizeArtifact(sessionID, artifactID, html, status); err != nil {
		log.Debug("finalize dropped", zap.Error(err))
		return
	}
	log.Debug("artifact settled", zap.String("status", string(status)), zap.Int("bytes", len(html)))
}

// NormalizeHTML strips a wrapping markdown code fence and trims whitespace.
// Idempotent: text without fences passes through untouched.
func NormalizeHTML(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		// Drop the fence marker and an optional language tag on its line.
		if idx := strings.IndexByte(text, '\n'); idx != -1 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```html")
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
