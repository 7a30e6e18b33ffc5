// Package agentstudio provides a high-level façade over the agent catalog,
// provider router, credential resolver, run history and workflow engine,
// enabling quick construction of human-gated agent pipelines. Most
// applications interact with this package by:
//  1. Creating a Workspace via New() (optionally supplying an agents.yaml
//     document, custom adapters, or a structured logger)
//  2. Obtaining a Session, which owns all mutable state for one user
//  3. Running single agents (Session.Runner) or step pipelines
//     (Session.Workflow, optionally behind a workflow.Engine)
//
// All defaults are safe for local development and testing; the four
// production adapters read real credentials from the environment or from
// session-supplied values.
package agentstudio

import (
	"time"

	"github.com/stackfield/agentstudio/catalog"
	"github.com/stackfield/agentstudio/credential"
	"github.com/stackfield/agentstudio/history"
	"github.com/stackfield/agentstudio/logging"
	"github.com/stackfield/agentstudio/provider"
	"github.com/stackfield/agentstudio/provider/anthropic"
	"github.com/stackfield/agentstudio/provider/gemini"
	"github.com/stackfield/agentstudio/provider/grok"
	"github.com/stackfield/agentstudio/provider/openai"
	"github.com/stackfield/agentstudio/runner"
	"github.com/stackfield/agentstudio/session"
	"github.com/stackfield/agentstudio/workflow"
)

// Options configures the Workspace.
type Options struct {
	// CatalogDocument is an optional agents.yaml payload merged over the
	// built-in fallback agents (document entries win on id collision). An
	// unparseable document is ignored with a warning, leaving the builtins.
	CatalogDocument []byte

	// Adapters replaces the default set of four provider adapters.
	Adapters []provider.Adapter

	// DefaultModel seeds workflow steps and the catalog normalizer.
	DefaultModel string

	// DefaultMaxTokens seeds workflow steps.
	DefaultMaxTokens int

	// Temperature applies to every dispatch (workflow and runner).
	Temperature float64

	// DefaultAgentID seeds a new workflow's initial step.
	DefaultAgentID string

	// LookupEnv overrides the environment source for credentials. Defaults
	// to the process environment.
	LookupEnv func(key string) (string, bool)

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Workspace is the process-wide, read-only root: the base catalog, the
// adapter set, and defaults. Sessions created from it own all mutable state.
type Workspace struct {
	opts     Options
	base     *catalog.Catalog
	sessions *session.InMemoryStore
}

// New creates a Workspace with optional overrides. Unset options fall back
// to the built-in catalog, the four production adapters, and workspace-wide
// defaults (gpt-4o-mini, 12k tokens, temperature 0.2).
func New(optFns ...func(o *Options)) *Workspace {
	opts := Options{
		DefaultModel:     "gpt-4o-mini",
		DefaultMaxTokens: provider.DefaultMaxTokens,
		Temperature:      provider.DefaultTemperature,
		DefaultAgentID:   "note_organizer",
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if len(opts.Adapters) == 0 {
		opts.Adapters = []provider.Adapter{
			openai.New(),
			gemini.New(),
			anthropic.New(),
			grok.New(),
		}
	}

	base := catalog.Builtins()
	if len(opts.CatalogDocument) > 0 {
		if external, err := catalog.Parse(opts.CatalogDocument); err == nil {
			base = catalog.Merge(external, base)
		} else {
			opts.Logger.Warn("catalog document rejected, using builtins", "error", err.Error())
		}
	}

	w := &Workspace{opts: opts, base: base}
	w.sessions = session.NewInMemoryStore(w.newSession)
	return w
}

// BaseCatalog returns the immutable process-wide catalog.
func (w *Workspace) BaseCatalog() *catalog.Catalog { return w.base }

// Session returns the session for id, creating and wiring it on first use.
func (w *Workspace) Session(id string) *session.Session {
	return w.sessions.Get(id)
}

// CloseSession discards the session for id along with its workflow, run log
// and session credentials.
func (w *Workspace) CloseSession(id string) {
	w.sessions.Delete(id)
}

// newSession wires a fresh session: its own credential resolver, router view,
// catalog override tier, run log, workflow and runner.
func (w *Workspace) newSession(id string) *session.Session {
	resolverOpts := []func(o *credential.Options){}
	if w.opts.LookupEnv != nil {
		resolverOpts = append(resolverOpts, func(o *credential.Options) { o.LookupEnv = w.opts.LookupEnv })
	}
	resolver := credential.NewResolver(resolverOpts...)

	router := provider.NewRouter(resolver, w.opts.Adapters, func(o *provider.RouterOptions) {
		o.Logger = w.opts.Logger
	})

	normalizer := catalog.NewNormalizer(router, func(o *catalog.NormalizerOptions) {
		o.Model = w.opts.DefaultModel
	})
	catStore := catalog.NewStore(w.base, func(o *catalog.StoreOptions) {
		o.Normalizer = normalizer
	})

	log := history.NewLog()

	wf := workflow.New(catStore, router, log, func(o *workflow.Options) {
		o.DefaultAgentID = w.opts.DefaultAgentID
		o.DefaultModel = w.opts.DefaultModel
		o.DefaultMaxTokens = w.opts.DefaultMaxTokens
		o.Temperature = w.opts.Temperature
		o.Logger = w.opts.Logger
	})

	run := runner.New(catStore, router, log, func(o *runner.Options) {
		o.Temperature = w.opts.Temperature
		o.Logger = w.opts.Logger
	})

	return &session.Session{
		ID:          id,
		Created:     time.Now(),
		Catalog:     catStore,
		Credentials: resolver,
		History:     log,
		Workflow:    wf,
		Runner:      run,
	}
}
