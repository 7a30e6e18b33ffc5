package catalog

import (
	"testing"

	"github.com/stackfield/agentstudio/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_GetAndNotFound(t *testing.T) {
	c := New(map[string]Definition{
		"summarizer": {Name: "Summarizer", Model: "gpt-4o-mini", MaxTokens: 4000},
	})

	def, err := c.Get("summarizer")
	require.NoError(t, err)
	assert.Equal(t, "summarizer", def.ID)
	assert.Equal(t, "Summarizer", def.Name)

	_, err = c.Get("nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.ID)
}

func TestNew_FillsDefaultTokenBudget(t *testing.T) {
	c := New(map[string]Definition{"a": {Name: "A", Model: "gpt-4o-mini"}})
	def, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, provider.DefaultMaxTokens, def.MaxTokens)
}

func TestMerge_PrimaryWinsBuiltinsFillGaps(t *testing.T) {
	external := New(map[string]Definition{
		"note_organizer": {Name: "Custom Organizer", Model: "gpt-4.1-mini", MaxTokens: 6000},
		"my_agent":       {Name: "Mine", Model: "gpt-4o-mini", MaxTokens: 2000},
	})

	merged := Merge(external, Builtins())

	def, err := merged.Get("note_organizer")
	require.NoError(t, err)
	assert.Equal(t, "Custom Organizer", def.Name, "external entry must win over builtin")

	_, err = merged.Get("my_agent")
	assert.NoError(t, err)

	// Builtins fill the gaps.
	_, err = merged.Get("polisher")
	assert.NoError(t, err)
	assert.Equal(t, Builtins().Len()+1, merged.Len())
}

func TestBuiltins(t *testing.T) {
	b := Builtins()
	require.Equal(t, 10, b.Len())

	// Every builtin references a model that resolves to a provider.
	for _, def := range b.Definitions() {
		_, err := provider.ResolveProvider(def.Model)
		assert.NoError(t, err, "builtin %s references unknown model %s", def.ID, def.Model)
		assert.Positive(t, def.MaxTokens)
		assert.NotEmpty(t, def.SystemPrompt)
	}
}

func TestDefinition_AllowsModel(t *testing.T) {
	open := Definition{}
	assert.True(t, open.AllowsModel("gpt-4o-mini"))

	restricted := Definition{SupportedModels: []string{"gpt-4o-mini", "gemini-2.5-flash"}}
	assert.True(t, restricted.AllowsModel("gemini-2.5-flash"))
	assert.False(t, restricted.AllowsModel("claude-3-opus-20240229"))
}

func TestDefinition_ModelChoices(t *testing.T) {
	open := Definition{}
	assert.Equal(t, provider.Models(), open.ModelChoices())

	restricted := Definition{SupportedModels: []string{"gpt-4o-mini"}}
	assert.Equal(t, []string{"gpt-4o-mini"}, restricted.ModelChoices())

	// An allow-list naming only unknown models falls back to the full inventory.
	stale := Definition{SupportedModels: []string{"retired-model"}}
	assert.Equal(t, provider.Models(), stale.ModelChoices())
}

func TestCatalog_Categories(t *testing.T) {
	cats := Builtins().Categories()
	assert.Contains(t, cats, "Note Keeper")
	assert.Contains(t, cats, "Document")
}
