package session

import (
	"time"

	"github.com/stackfield/agentstudio/catalog"
	"github.com/stackfield/agentstudio/credential"
	"github.com/stackfield/agentstudio/history"
	"github.com/stackfield/agentstudio/runner"
	"github.com/stackfield/agentstudio/workflow"
)

// Session bundles the per-session services. Every field is exclusively owned
// by this session; only the catalog store's base tier and the credential
// resolver's environment tier are shared, and both are read-only.
type Session struct {
	// ID identifies the session.
	ID string
	// Created is the session creation time.
	Created time.Time

	// Catalog is the two-tier catalog view (session override over shared base).
	Catalog *catalog.Store
	// Credentials resolves API keys with env-over-session precedence.
	Credentials *credential.Resolver
	// History is the session's append-only run log.
	History *history.Log
	// Workflow is the session's step pipeline.
	Workflow *workflow.Workflow
	// Runner executes single agent invocations.
	Runner *runner.Runner
}
