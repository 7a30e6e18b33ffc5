package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/stackfield/agentstudio/provider"
)

// standardizePrompt instructs a model to rewrite an arbitrary agent
// configuration upload into the standard agents.yaml shape.
const standardizePrompt = `You are a configuration Standardization Agent.
Convert the user's uploaded agent configuration (which might be in any format) into the STANDARD format used by this system.

STANDARD FORMAT (YAML):
agents:
  unique_agent_id_snake_case:
    name: "Human Readable Name"
    description: "Short description"
    category: "Category Name"
    model: "gpt-4o-mini"
    max_tokens: 12000
    system_prompt: |
      The system prompt text...

RULES:
1. Extract as many agents as possible.
2. Map fields as best as you can.
3. Ensure valid YAML output.
4. Output ONLY the YAML, no markdown code blocks.`

// NormalizerOptions configures a Normalizer.
type NormalizerOptions struct {
	// Model runs the standardization pass. Defaults to gpt-4o-mini.
	Model string
	// MaxTokens bounds the standardization response.
	MaxTokens int
}

// Normalizer rewrites arbitrary uploaded documents into the standard catalog
// shape using one model call. It is a best-effort recovery path for imports
// that fail validation, not a substitute for a well-formed agents.yaml.
type Normalizer struct {
	dispatcher provider.Dispatcher
	opts       NormalizerOptions
}

// NewNormalizer constructs a Normalizer over the given dispatcher.
func NewNormalizer(d provider.Dispatcher, optFns ...func(o *NormalizerOptions)) *Normalizer {
	opts := NormalizerOptions{Model: "gpt-4o-mini", MaxTokens: 8000}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Normalizer{dispatcher: d, opts: opts}
}

// Normalize runs the standardization pass over raw and parses the result.
// Temperature is pinned to zero so repeated passes over the same upload
// converge.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (*Catalog, error) {
	out, err := n.dispatcher.Dispatch(ctx, provider.Request{
		Model:        n.opts.Model,
		SystemPrompt: standardizePrompt,
		UserPrompt:   "Raw Content:\n" + raw,
		MaxTokens:    n.opts.MaxTokens,
		Temperature:  0,
	})
	if err != nil {
		return nil, fmt.Errorf("standardization pass failed: %w", err)
	}

	cleaned := strings.TrimSpace(stripFences(out))
	c, err := Parse([]byte(cleaned))
	if err != nil {
		return nil, fmt.Errorf("standardization output rejected: %w", err)
	}
	return c, nil
}

// stripFences removes markdown code fences models add despite instructions.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```yaml", "")
	return strings.ReplaceAll(s, "```", "")
}
