package provider

import (
	"context"
	"sort"
)

// Provider identifies one of the supported LLM backends. The set is closed:
// adding a backend means adding an Adapter implementation and extending the
// model table, not subclassing behavior at runtime.
type Provider string

const (
	// OpenAI is the OpenAI Chat Completions backend.
	OpenAI Provider = "openai"
	// Gemini is the Google Generative Language backend.
	Gemini Provider = "gemini"
	// Anthropic is the Anthropic Messages backend.
	Anthropic Provider = "anthropic"
	// Grok is the xAI backend (OpenAI-compatible wire format).
	Grok Provider = "grok"
)

// Providers returns all supported provider tags in stable order.
func Providers() []Provider {
	return []Provider{OpenAI, Gemini, Anthropic, Grok}
}

// modelProviders is the static, total mapping from every supported model
// identifier to its provider. Every model offered anywhere in a UI must
// resolve here; a miss is a configuration defect, not a runtime condition.
var modelProviders = map[string]Provider{
	// OpenAI
	"gpt-4o-mini":  OpenAI,
	"gpt-4.1-mini": OpenAI,
	// Gemini
	"gemini-2.5-flash":       Gemini,
	"gemini-3-flash-preview": Gemini,
	"gemini-2.5-flash-lite":  Gemini,
	"gemini-3-pro-preview":   Gemini,
	// Anthropic
	"claude-3-5-sonnet-20241022": Anthropic,
	"claude-3-5-haiku-20241022":  Anthropic,
	"claude-3-opus-20240229":     Anthropic,
	// xAI Grok
	"grok-4-fast-reasoning":       Grok,
	"grok-4-1-fast-non-reasoning": Grok,
}

// ResolveProvider maps a model identifier to its provider tag. Unknown models
// fail with *UnsupportedModelError before any credential lookup or network
// activity happens.
func ResolveProvider(model string) (Provider, error) {
	p, ok := modelProviders[model]
	if !ok {
		return "", &UnsupportedModelError{Model: model}
	}
	return p, nil
}

// Models returns every supported model identifier, sorted.
func Models() []string {
	models := make([]string, 0, len(modelProviders))
	for m := range modelProviders {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

// ModelsFor returns the supported model identifiers for a single provider, sorted.
func ModelsFor(p Provider) []string {
	var models []string
	for m, mp := range modelProviders {
		if mp == p {
			models = append(models, m)
		}
	}
	sort.Strings(models)
	return models
}

// Request is the normalized model input shared by all adapters. Adapters
// translate it into whatever shape their backend expects (message-role pairs,
// a single concatenated prompt, or provider-specific generation options).
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int     // token budget, > 0
	Temperature  float64 // sampling temperature in [0, 1]
}

// Adapter is the per-backend translation boundary. Complete issues exactly
// one blocking call and returns the response as plain text. Implementations
// return raw upstream errors; the Router wraps them into ProviderError so
// SDK-specific types never cross the dispatch boundary.
type Adapter interface {
	// Complete sends the request using the given credential and returns the
	// response text.
	Complete(ctx context.Context, apiKey string, req Request) (string, error)

	// Provider returns the backend tag this adapter serves.
	Provider() Provider
}

// Dispatcher is the minimal interface consumed by the workflow engine and
// runner. Router is the production implementation; tests substitute a
// DispatcherFunc.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) (string, error)
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, req Request) (string, error)

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// CredentialSource resolves a usable secret for a provider. The credential
// package supplies the production implementation with env-over-session
// precedence.
type CredentialSource interface {
	Resolve(p Provider) (string, bool)
}
