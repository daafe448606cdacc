package studio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mockforge/internal/llm"
	"mockforge/internal/logging"
)

// ErrEmptyPrompt rejects a generation request whose prompt is blank.
var ErrEmptyPrompt = errors.New("prompt is empty")

// Coordinator orchestrates one batch: it creates the session, resolves style
// directions, and fans out one Generator per artifact. Generators run
// concurrently and settle in any order; the batch loading flag stays set
// until every one of them has settled.
type Coordinator struct {
	client llm.Client
	state  *State
	fanOut int
}

// NewCoordinator creates a coordinator with the given fan-out. fanOut <= 0
// falls back to DefaultFanOut.
func NewCoordinator(client llm.Client, state *State, fanOut int) *Coordinator {
	if fanOut <= 0 {
		fanOut = DefaultFanOut
	}
	return &Coordinator{client: client, state: state, fanOut: fanOut}
}

// Generate runs a full batch for one prompt and blocks until all artifacts
// settle. It returns the new session's id; observers watch progress through
// State.Subscribe. A fatal error before body generation begins aborts the
// batch: loading is cleared and the placeholders stay in streaming state.
func (c *Coordinator) Generate(ctx context.Context, prompt string) (string, error) {
	log := logging.Get(logging.CategoryStudio)

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	session := NewSession(prompt, c.fanOut)
	c.state.AppendSession(session)
	c.state.SetLoading(true)

	log.Info("session started",
		zap.String("session", session.ID),
		zap.Int("fan_out", c.fanOut))

	directions, err := c.resolveDirections(ctx, prompt)
	if err != nil {
		// Phase 1 transport failure: abort the batch. The placeholders stay
		// streaming until the user acts again; nothing is retried here.
		c.state.SetLoading(false)
		log.Warn("direction resolution failed, batch aborted",
			zap.String("session", session.ID), zap.Error(err))
		return session.ID, fmt.Errorf("direction resolution: %w", err)
	}

	if err := c.state.ApplyStyleNames(session.ID, directions); err != nil {
		c.state.SetLoading(false)
		return session.ID, err
	}

	gen := NewGenerator(c.client, c.state)

	// Wait for all, tolerate individual failure: workers always return nil
	// so one failed artifact never cancels its siblings.
	g := new(errgroup.Group)
	for i, artifact := range session.Artifacts {
		direction := directions[i]
		artifactID := artifact.ID
		g.Go(func() error {
			gen.Generate(ctx, session.ID, artifactID, prompt, direction)
			return nil
		})
	}
	_ = g.Wait()

	c.state.SetLoading(false)
	log.Info("session settled", zap.String("session", session.ID))
	return session.ID, nil
}

// resolveDirections asks the service for fanOut short style labels. A
// transport failure is fatal and propagates. Malformed JSON and a short
// label list share one recovery path: the fixed fallback set. Extra labels
// are truncated so exactly fanOut are returned.
func (c *Coordinator) resolveDirections(ctx context.Context, prompt string) ([]string, error) {
	text, err := c.client.Complete(ctx, "", directionPrompt(prompt, c.fanOut))
	if err != nil {
		return nil, err
	}

	labels := parseDirectionLabels(text)
	if len(labels) < c.fanOut {
		logging.Get(logging.CategoryStudio).Debug("falling back to generic directions",
			zap.Int("parsed", len(labels)))
		labels = append([]string(nil), FallbackDirections...)
	}
	// Pad for fan-outs beyond the fallback set, then truncate extras.
	for len(labels) < c.fanOut {
		labels = append(labels, fmt.Sprintf("Direction %d", len(labels)+1))
	}
	return labels[:c.fanOut], nil
}

// parseDirectionLabels extracts the first balanced JSON array substring from
// the response text and unmarshals it as a string list. Returns nil when no
// parseable array is found.
func parseDirectionLabels(text string) []string {
	start := strings.IndexByte(text, '[')
	if start == -1 {
		return nil
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				var labels []string
				if err := json.Unmarshal([]byte(text[start:i+1]), &labels); err != nil {
					return nil
				}
				return labels
			}
		}
	}
	return nil
}
