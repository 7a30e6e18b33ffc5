package provider

import "fmt"

// UnsupportedModelError reports a model identifier with no provider mapping.
// This is a configuration defect: it must be fixed at catalog/config time and
// is never retried.
type UnsupportedModelError struct {
	Model string
}

// Error implements the error interface.
func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model: %s", e.Model)
}

// MissingCredentialError reports that no usable credential exists for the
// provider. Recoverable by the user supplying a session credential.
type MissingCredentialError struct {
	Provider Provider
}

// Error implements the error interface.
func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing API key for provider: %s", e.Provider)
}

// ProviderError wraps an upstream backend failure (HTTP status, rate limit,
// malformed response) with the offending provider and model. Adapter-specific
// error types never escape the router; callers match on this type.
type ProviderError struct {
	Provider Provider
	Model    string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: model %s: %v", e.Provider, e.Model, e.Err)
}

// Unwrap exposes the upstream error for errors.Is/As.
func (e *ProviderError) Unwrap() error { return e.Err }
