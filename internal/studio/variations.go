package studio

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"mockforge/internal/llm"
	"mockforge/internal/logging"
	"mockforge/internal/stream"
)

// variationCount is the number of alternatives requested per batch.
const variationCount = 3

// VariationStream drives one streaming request that emits labeled
// alternatives for an already-generated artifact. The payload is structured
// (one JSON object per alternative), so the stream is piped through the
// incremental extractor and each object surfaces as soon as it closes.
type VariationStream struct {
	client llm.Client
}

// NewVariationStream creates a variation stream bound to a client.
func NewVariationStream(client llm.Client) *VariationStream {
	return &VariationStream{client: client}
}

// Generate requests variationCount alternatives for the artifact's
// originating prompt. Well-formed variations (both fields non-empty) are
// delivered in arrival order on the returned channel; partial or malformed
// objects are skipped silently. The channel closes when the stream ends; at
// most one error is delivered on the error channel before it closes.
func (v *VariationStream) Generate(ctx context.Context, prompt string) (<-chan Variation, <-chan error) {
	out := make(chan Variation, variationCount)
	errs := make(chan error, 1)

	content, streamErrs := v.client.Stream(ctx, variationSystemPrompt, variationPrompt(prompt, variationCount))
	objects := stream.Objects(ctx, content)

	go func() {
		defer close(out)
		defer close(errs)

		log := logging.Get(logging.CategoryStudio)

		for raw := range objects {
			var variation Variation
			if err := json.Unmarshal(raw, &variation); err != nil {
				log.Debug("skipping malformed variation", zap.Error(err))
				continue
			}
			if variation.Name == "" || variation.HTML == "" {
				log.Debug("skipping incomplete variation", zap.String("name", variation.Name))
				continue
			}
			select {
			case out <- variation:
			case <-ctx.Done():
				return
			}
		}

		if err := <-streamErrs; err != nil {
			log.Warn("variation stream failed", zap.Error(err))
			errs <- err
		}
	}()

	return out, errs
}

// Collect drains a variation channel into an ordered list. Convenience for
// callers that want the settled batch rather than live arrivals.
func Collect(variations <-chan Variation) []Variation {
	var out []Variation
	for v := range variations {
		out = append(out, v)
	}
	return out
}
