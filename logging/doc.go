// Package logging provides a minimal logging interface and adapters for the
// agent workspace.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the workflow engine, router and runner use for
// observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - StudioLogger with contextual helpers (session, component) and a
//     provider-call convenience method
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	ws := agentstudio.New(func(o *agentstudio.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
