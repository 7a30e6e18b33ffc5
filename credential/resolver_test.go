package credential

import (
	"testing"

	"github.com/stackfield/agentstudio/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapEnv(m map[string]string) func(o *Options) {
	return func(o *Options) {
		o.LookupEnv = func(key string) (string, bool) {
			v, ok := m[key]
			return v, ok
		}
	}
}

func TestResolver_EnvWinsOverSession(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{"OPENAI_API_KEY": "env-key"}))
	r.SetSession(provider.OpenAI, "session-key")

	assert.Equal(t, StatusConfigured, r.Status(provider.OpenAI))

	key, ok := r.Resolve(provider.OpenAI)
	require.True(t, ok)
	assert.Equal(t, "env-key", key)
}

func TestResolver_SessionFallback(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{}))
	r.SetSession(provider.Gemini, "session-key")

	assert.Equal(t, StatusSessionSupplied, r.Status(provider.Gemini))

	key, ok := r.Resolve(provider.Gemini)
	require.True(t, ok)
	assert.Equal(t, "session-key", key)
}

func TestResolver_Missing(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{}))

	assert.Equal(t, StatusMissing, r.Status(provider.Anthropic))

	_, ok := r.Resolve(provider.Anthropic)
	assert.False(t, ok)
}

func TestResolver_EmptyEnvValueIgnored(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{"GROK_API_KEY": "   "}))

	assert.Equal(t, StatusMissing, r.Status(provider.Grok))

	r.SetSession(provider.Grok, "xai-key")
	assert.Equal(t, StatusSessionSupplied, r.Status(provider.Grok))
}

func TestResolver_SetSessionTrimsAndClears(t *testing.T) {
	r := NewResolver(mapEnv(map[string]string{}))

	r.SetSession(provider.OpenAI, "  padded  ")
	key, ok := r.Resolve(provider.OpenAI)
	require.True(t, ok)
	assert.Equal(t, "padded", key)

	r.SetSession(provider.OpenAI, "")
	assert.Equal(t, StatusMissing, r.Status(provider.OpenAI))

	r.SetSession(provider.OpenAI, "again")
	r.ClearSession(provider.OpenAI)
	assert.Equal(t, StatusMissing, r.Status(provider.OpenAI))
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", EnvVar(provider.OpenAI))
	assert.Equal(t, "GEMINI_API_KEY", EnvVar(provider.Gemini))
	assert.Equal(t, "ANTHROPIC_API_KEY", EnvVar(provider.Anthropic))
	assert.Equal(t, "GROK_API_KEY", EnvVar(provider.Grok))
}
