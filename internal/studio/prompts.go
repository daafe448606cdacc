package studio

import "fmt"

// artifactSystemPrompt is the fixed ruleset sent with every artifact body
// request. It pins output shape (one self-contained HTML document, no
// markdown) so downstream normalization stays a fence-strip and trim.
const artifactSystemPrompt = `You are an expert UI engineer and visual designer.
You produce a single, self-contained HTML document implementing the requested
component. Rules:
- Inline all CSS in a <style> block; no external resources, no JavaScript
  frameworks, no CDN links.
- The document must render standalone in a sandboxed iframe.
- Use modern CSS (flexbox, grid, custom properties) and tasteful spacing,
  typography, and color consistent with the assigned style direction.
- Output ONLY the HTML document. No markdown fences, no commentary.`

// directionPrompt asks for n short creative style labels as a JSON array.
func directionPrompt(prompt string, n int) string {
	return fmt.Sprintf(`Propose %d short, distinct creative style directions for this UI component request:

%q

Each direction is a label of at most three words (e.g. "Soft Glass", "Brutalist", "Neon").
Respond with ONLY a JSON array of %d strings.`, n, prompt, n)
}

// artifactPrompt binds the user request to one style direction.
func artifactPrompt(prompt, direction string) string {
	return fmt.Sprintf(`Component request: %s

Style direction: %s

Generate the component now.`, prompt, direction)
}

// variationSystemPrompt governs the variation batch request. The payload is
// structured, so the rules pin the JSON object shape instead of raw HTML.
const variationSystemPrompt = `You are an expert UI engineer generating alternative
renderings of an existing component. For each alternative emit exactly one JSON
object on its own with the shape {"name": "...", "html": "..."} where name is a
short style label and html is a complete self-contained HTML document following
the same rules as the original (inline CSS, no external resources, no scripts).
Emit the objects one after another with no surrounding array and no markdown.`

// variationPrompt asks for count alternatives of the original request.
func variationPrompt(prompt string, count int) string {
	return fmt.Sprintf(`Original component request: %s

Emit exactly %d alternative renderings as JSON objects.`, prompt, count)
}
