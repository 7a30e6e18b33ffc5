// Package provider defines the provider-agnostic dispatch contract for the
// agent workspace and the router that fans a normalized request out to one of
// the four supported LLM backends.
//
// Core pieces:
//   - Provider: closed enum of supported backends (OpenAI, Gemini, Anthropic, Grok)
//   - Request: normalized model input (model, system prompt, user prompt,
//     token budget, temperature)
//   - Adapter: the per-backend translation boundary; one implementation per
//     Provider lives in a subpackage
//   - Router: resolves model to provider, resolves the credential, issues a
//     single blocking call through the adapter, and normalizes every failure
//     into the typed error taxonomy (UnsupportedModelError,
//     MissingCredentialError, ProviderError)
//
// The uniform error surface is the router's core value: the workflow engine
// and runner treat all four backends identically and never see SDK-specific
// error types.
package provider
