package agentstudio

import (
	"context"
	"testing"

	"github.com/stackfield/agentstudio/catalog"
	"github.com/stackfield/agentstudio/credential"
	"github.com/stackfield/agentstudio/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter serves every provider tag with a canned reply so facade tests
// never touch the network.
type fakeAdapter struct {
	tag      provider.Provider
	response string
}

func (a *fakeAdapter) Complete(_ context.Context, _ string, _ provider.Request) (string, error) {
	return a.response, nil
}

func (a *fakeAdapter) Provider() provider.Provider { return a.tag }

func fakeAdapters(response string) []provider.Adapter {
	out := make([]provider.Adapter, 0, len(provider.Providers()))
	for _, p := range provider.Providers() {
		out = append(out, &fakeAdapter{tag: p, response: response})
	}
	return out
}

func emptyEnv(string) (string, bool) { return "", false }

func TestNew_DefaultsToBuiltinCatalog(t *testing.T) {
	w := New()
	assert.Equal(t, catalog.Builtins().Len(), w.BaseCatalog().Len())
}

func TestNew_MergesCatalogDocumentOverBuiltins(t *testing.T) {
	doc := []byte(`
agents:
  note_organizer:
    name: "House Organizer"
    model: "gpt-4o-mini"
    system_prompt: "Organize our way."
    max_tokens: 6000
  custom_agent:
    name: "Custom"
    model: "gemini-2.5-flash"
    system_prompt: "Custom."
    max_tokens: 2000
`)
	w := New(func(o *Options) { o.CatalogDocument = doc })

	def, err := w.BaseCatalog().Get("note_organizer")
	require.NoError(t, err)
	assert.Equal(t, "House Organizer", def.Name)

	_, err = w.BaseCatalog().Get("custom_agent")
	assert.NoError(t, err)
	assert.Equal(t, catalog.Builtins().Len()+1, w.BaseCatalog().Len())
}

func TestNew_BadCatalogDocumentFallsBackToBuiltins(t *testing.T) {
	w := New(func(o *Options) { o.CatalogDocument = []byte(":::garbage:::") })
	assert.Equal(t, catalog.Builtins().Len(), w.BaseCatalog().Len())
}

func TestSession_WiringEndToEnd(t *testing.T) {
	w := New(func(o *Options) {
		o.Adapters = fakeAdapters("fake reply")
		o.LookupEnv = emptyEnv
	})

	sess := w.Session("alice")
	require.NotNil(t, sess)
	assert.Equal(t, "alice", sess.ID)
	assert.False(t, sess.Created.IsZero())

	// Without any credential the run fails before reaching the adapter and
	// leaves no record.
	_, err := sess.Runner.Run(context.Background(), "note_organizer", "notes")
	var missing *provider.MissingCredentialError
	require.ErrorAs(t, err, &missing)
	assert.Zero(t, sess.History.Len())

	// A session-supplied key unblocks the same run.
	sess.Credentials.SetSession(provider.OpenAI, "sk-session")
	out, err := sess.Runner.Run(context.Background(), "note_organizer", "notes")
	require.NoError(t, err)
	assert.Equal(t, "fake reply", out)
	assert.Equal(t, 1, sess.History.Len())

	// The workflow shares the session's log.
	sess.Workflow.SetInput("notes")
	require.NoError(t, sess.Workflow.RunStep(context.Background(), 0))
	assert.Equal(t, 2, sess.History.Len())
	assert.Equal(t, "fake reply", sess.Workflow.Output())
}

func TestSession_IsolationAndClose(t *testing.T) {
	w := New(func(o *Options) {
		o.Adapters = fakeAdapters("ok")
		o.LookupEnv = emptyEnv
	})

	alice := w.Session("alice")
	bob := w.Session("bob")
	require.NotSame(t, alice, bob)

	alice.Credentials.SetSession(provider.Gemini, "key-a")
	assert.Equal(t, credential.StatusSessionSupplied, alice.Credentials.Status(provider.Gemini))
	assert.Equal(t, credential.StatusMissing, bob.Credentials.Status(provider.Gemini))

	require.NoError(t, alice.Catalog.Replace(context.Background(), []byte(`
agents:
  only_alice:
    name: "Only Alice"
    model: "gpt-4o-mini"
    system_prompt: "Hers."
`)))
	_, err := alice.Catalog.Get("only_alice")
	assert.NoError(t, err)
	_, err = bob.Catalog.Get("only_alice")
	assert.Error(t, err, "session catalog overrides never leak across sessions")

	w.CloseSession("alice")
	fresh := w.Session("alice")
	require.NotSame(t, alice, fresh)
	assert.Equal(t, credential.StatusMissing, fresh.Credentials.Status(provider.Gemini))
	_, err = fresh.Catalog.Get("only_alice")
	assert.Error(t, err)
}

func TestSession_SameInstanceReturned(t *testing.T) {
	w := New(func(o *Options) { o.LookupEnv = emptyEnv })
	assert.Same(t, w.Session("x"), w.Session("x"))
}
