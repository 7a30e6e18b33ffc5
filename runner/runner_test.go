package runner

import (
	"context"
	"testing"

	"github.com/stackfield/agentstudio/catalog"
	"github.com/stackfield/agentstudio/history"
	"github.com/stackfield/agentstudio/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(d provider.Dispatcher) (*Runner, *history.Log) {
	log := history.NewLog()
	return New(catalog.NewStore(catalog.Builtins()), d, log), log
}

func TestRun_Success(t *testing.T) {
	var captured provider.Request
	d := provider.DispatcherFunc(func(_ context.Context, req provider.Request) (string, error) {
		captured = req
		return "organized", nil
	})
	r, log := newTestRunner(d)

	out, err := r.Run(context.Background(), "note_organizer", "meeting scribbles")
	require.NoError(t, err)
	assert.Equal(t, "organized", out)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.NotEmpty(t, captured.SystemPrompt)
	assert.Equal(t, "meeting scribbles", captured.UserPrompt)

	records := log.All()
	require.Len(t, records, 1)
	assert.Equal(t, "Run Agent", records[0].Component)
	assert.Equal(t, "Note Organizer", records[0].Agent)
	assert.True(t, records[0].OK)
	assert.Equal(t, "note_organizer", records[0].Meta["agent_id"])
}

func TestRun_PromptJoinsInput(t *testing.T) {
	var captured provider.Request
	d := provider.DispatcherFunc(func(_ context.Context, req provider.Request) (string, error) {
		captured = req
		return "ok", nil
	})
	r, _ := newTestRunner(d)

	_, err := r.Run(context.Background(), "polisher", "rough draft", func(o *RunOptions) {
		o.Prompt = "Polish for an executive audience."
		o.Component = "Note Keeper"
	})
	require.NoError(t, err)
	assert.Equal(t, "Polish for an executive audience.\n\nrough draft", captured.UserPrompt)
}

func TestRun_UnknownAgent(t *testing.T) {
	r, log := newTestRunner(provider.DispatcherFunc(func(_ context.Context, _ provider.Request) (string, error) {
		t.Fatal("dispatcher must not be called for an unknown agent")
		return "", nil
	}))

	_, err := r.Run(context.Background(), "ghost_agent", "input")
	var nf *catalog.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Zero(t, log.Len())
}

func TestRun_DisallowedModelOverride(t *testing.T) {
	cat := catalog.New(map[string]catalog.Definition{
		"strict_agent": {
			Name:            "Strict",
			Model:           "gpt-4o-mini",
			SystemPrompt:    "Strict.",
			SupportedModels: []string{"gpt-4o-mini", "gpt-4.1-mini"},
		},
	})
	log := history.NewLog()
	r := New(catalog.NewStore(cat), provider.DispatcherFunc(func(_ context.Context, _ provider.Request) (string, error) {
		t.Fatal("dispatcher must not be called for a rejected override")
		return "", nil
	}), log)

	_, err := r.Run(context.Background(), "strict_agent", "doc", func(o *RunOptions) {
		o.Model = "grok-4-fast-reasoning"
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
	assert.Zero(t, log.Len())
}

func TestRun_ProviderFailureRecordedNotOK(t *testing.T) {
	r, log := newTestRunner(provider.DispatcherFunc(func(_ context.Context, _ provider.Request) (string, error) {
		return "", assert.AnError
	}))

	_, err := r.Run(context.Background(), "critic", "text")
	require.ErrorIs(t, err, assert.AnError)

	records := log.All()
	require.Len(t, records, 1)
	assert.False(t, records[0].OK)
}

func TestRun_PreExecutionFailureProducesNoRecord(t *testing.T) {
	r, log := newTestRunner(provider.DispatcherFunc(func(_ context.Context, _ provider.Request) (string, error) {
		return "", &provider.MissingCredentialError{Provider: provider.OpenAI}
	}))

	_, err := r.Run(context.Background(), "critic", "text")
	require.Error(t, err)
	assert.Zero(t, log.Len())
}
