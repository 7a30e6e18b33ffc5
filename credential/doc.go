// Package credential resolves per-provider API keys with strict precedence:
// a process-wide environment value always outranks a session-supplied value,
// and a provider with neither is unavailable.
//
// The Resolver is the production implementation of provider.CredentialSource.
// Environment configuration is read-only and shared across sessions; session
// secrets are owned by exactly one Resolver instance and must never be shared
// between sessions.
package credential
