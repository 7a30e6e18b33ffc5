package credential

import (
	"os"
	"strings"
	"sync"

	"github.com/stackfield/agentstudio/provider"
)

// Status classifies how a provider's credential is sourced.
type Status int

const (
	// StatusMissing means no usable credential exists for the provider.
	StatusMissing Status = iota
	// StatusConfigured means a non-empty process-wide environment value exists.
	StatusConfigured
	// StatusSessionSupplied means the credential was entered for this session only.
	StatusSessionSupplied
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusConfigured:
		return "configured"
	case StatusSessionSupplied:
		return "session"
	default:
		return "missing"
	}
}

// envVars names the one environment variable consulted per provider.
var envVars = map[provider.Provider]string{
	provider.OpenAI:    "OPENAI_API_KEY",
	provider.Gemini:    "GEMINI_API_KEY",
	provider.Anthropic: "ANTHROPIC_API_KEY",
	provider.Grok:      "GROK_API_KEY",
}

// EnvVar returns the environment variable name consulted for a provider.
func EnvVar(p provider.Provider) string { return envVars[p] }

// Options configures a Resolver.
type Options struct {
	// LookupEnv overrides the environment source. Defaults to os.LookupEnv.
	// Tests substitute a map-backed lookup.
	LookupEnv func(key string) (string, bool)
}

// Resolver resolves usable secrets per provider. One Resolver instance is
// owned by one session: the environment tier is shared and read-only, the
// session tier is private mutable state.
type Resolver struct {
	mu        sync.RWMutex
	lookupEnv func(key string) (string, bool)
	session   map[provider.Provider]string
}

// Compile-time assertion that Resolver satisfies the router's contract.
var _ provider.CredentialSource = (*Resolver)(nil)

// NewResolver constructs a Resolver reading the process environment by default.
func NewResolver(optFns ...func(o *Options)) *Resolver {
	opts := Options{LookupEnv: os.LookupEnv}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Resolver{lookupEnv: opts.LookupEnv, session: make(map[provider.Provider]string)}
}

// SetSession stores a session-supplied secret for the provider. Whitespace is
// trimmed; an empty value clears the entry.
func (r *Resolver) SetSession(p provider.Provider, secret string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	secret = strings.TrimSpace(secret)
	if secret == "" {
		delete(r.session, p)
		return
	}
	r.session[p] = secret
}

// ClearSession removes the session-supplied secret for the provider.
func (r *Resolver) ClearSession(p provider.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.session, p)
}

// Status reports how the provider's credential is sourced. A process-wide
// environment value wins regardless of any session value.
func (r *Resolver) Status(p provider.Provider) Status {
	if r.envValue(p) != "" {
		return StatusConfigured
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session[p] != "" {
		return StatusSessionSupplied
	}
	return StatusMissing
}

// Resolve returns the usable secret for the provider, or false if the
// provider is unavailable. Precedence is strictly environment over session.
func (r *Resolver) Resolve(p provider.Provider) (string, bool) {
	if v := r.envValue(p); v != "" {
		return v, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v := r.session[p]; v != "" {
		return v, true
	}
	return "", false
}

func (r *Resolver) envValue(p provider.Provider) string {
	name, ok := envVars[p]
	if !ok {
		return ""
	}
	v, ok := r.lookupEnv(name)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
