package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/stackfield/agentstudio/logging"
)

// Default request parameters applied when a caller leaves them unset.
// Values mirror the workspace-wide defaults (12k token budget, low
// temperature for deterministic drafting).
const (
	DefaultMaxTokens   = 12000
	DefaultTemperature = 0.2
)

// RouterOptions configures a Router.
type RouterOptions struct {
	// Logger receives per-dispatch diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Router implements Dispatcher by resolving the provider from the model,
// resolving the credential, and delegating to the registered adapter. Every
// failure path returns one of the typed errors from this package.
//
// The Router is read-only after construction and safe for concurrent use; all
// mutable per-session state (the credential source's session secrets) lives
// behind the CredentialSource.
type Router struct {
	adapters map[Provider]Adapter
	creds    CredentialSource
	logger   logging.Logger
}

// NewRouter constructs a Router over the given credential source and
// adapters. Registering two adapters for the same provider keeps the last
// one.
func NewRouter(creds CredentialSource, adapters []Adapter, optFns ...func(o *RouterOptions)) *Router {
	opts := RouterOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	m := make(map[Provider]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Provider()] = a
	}
	return &Router{adapters: m, creds: creds, logger: opts.Logger}
}

// Dispatch resolves the provider and credential for req.Model, issues one
// blocking call through the matching adapter, and returns the response text.
//
// Failure order is fixed: UnsupportedModelError (before any credential
// lookup), then MissingCredentialError (before any network activity), then
// ProviderError wrapping whatever the backend raised. Retries are never
// automatic.
func (r *Router) Dispatch(ctx context.Context, req Request) (string, error) {
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	if req.Temperature < 0 {
		req.Temperature = 0
	}
	if req.Temperature > 1 {
		req.Temperature = 1
	}

	p, err := ResolveProvider(req.Model)
	if err != nil {
		return "", err
	}

	key, ok := r.creds.Resolve(p)
	if !ok {
		return "", &MissingCredentialError{Provider: p}
	}

	adapter, ok := r.adapters[p]
	if !ok {
		return "", &ProviderError{Provider: p, Model: req.Model, Err: fmt.Errorf("no adapter registered")}
	}

	start := time.Now()
	text, err := adapter.Complete(ctx, key, req)
	if err != nil {
		r.logger.Error("provider call failed", "provider", string(p), "model", req.Model, "duration", time.Since(start), "error", err.Error())
		return "", &ProviderError{Provider: p, Model: req.Model, Err: err}
	}

	r.logger.Debug("provider call completed", "provider", string(p), "model", req.Model, "duration", time.Since(start))
	return text, nil
}
