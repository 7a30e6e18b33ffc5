package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
agents:
  summarizer:
    name: "Summarizer"
    model: "gpt-4o-mini"
    system_prompt: "You summarize."
    max_tokens: 4000
    category: "Note Keeper"
  reviewer:
    name: "Reviewer"
    model: "claude-3-5-sonnet-20241022"
    system_prompt: "You review."
    max_tokens: 8000
    supported_models:
      - "claude-3-5-sonnet-20241022"
      - "claude-3-opus-20240229"
`

func TestParse_ValidDocument(t *testing.T) {
	c, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	def, err := c.Get("reviewer")
	require.NoError(t, err)
	assert.Equal(t, "Reviewer", def.Name)
	assert.Equal(t, 8000, def.MaxTokens)
	assert.Len(t, def.SupportedModels, 2)
}

func TestParse_NotAMapping(t *testing.T) {
	_, err := Parse([]byte("- just\n- a\n- list\n"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestParse_EmptyAgents(t *testing.T) {
	_, err := Parse([]byte("agents: {}\n"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = Parse([]byte("something_else: true\n"))
	require.ErrorAs(t, err, &vErr)
}

func TestMarshal_RoundTrip(t *testing.T) {
	c, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	data, err := Marshal(c)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, c.Definitions(), again.Definitions())
}
