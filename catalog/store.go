package catalog

import (
	"context"
	"errors"
	"sync"
)

// StoreOptions configures a Store.
type StoreOptions struct {
	// Normalizer enables the best-effort LLM-assisted rewrite of documents
	// that fail validation on Replace. Nil disables the pass.
	Normalizer *Normalizer
}

// Store is the two-tier catalog view owned by one session: an immutable
// process-wide base plus an optional session override installed by Replace.
// Reads consult the override first, then the base.
type Store struct {
	base       *Catalog
	normalizer *Normalizer

	mu       sync.RWMutex
	override *Catalog
}

// NewStore constructs a Store over the given base catalog.
func NewStore(base *Catalog, optFns ...func(o *StoreOptions)) *Store {
	opts := StoreOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{base: base, normalizer: opts.Normalizer}
}

// Get returns the definition for id, consulting override then base.
func (s *Store) Get(id string) (Definition, error) {
	s.mu.RLock()
	override := s.override
	s.mu.RUnlock()

	if override != nil {
		if def, err := override.Get(id); err == nil {
			return def, nil
		}
	}
	return s.base.Get(id)
}

// Effective returns the merged view (override entries win, base fills gaps).
func (s *Store) Effective() *Catalog {
	s.mu.RLock()
	override := s.override
	s.mu.RUnlock()

	if override == nil {
		return s.base
	}
	return Merge(override, s.base)
}

// Replace installs raw as this session's override catalog. The import is
// all-or-nothing: on validation failure the previously active catalog stays
// in effect. When the document fails validation and a Normalizer is
// configured, one best-effort normalization pass runs before the hard
// failure is surfaced.
func (s *Store) Replace(ctx context.Context, raw []byte) error {
	c, err := Parse(raw)
	if err == nil {
		s.install(c)
		return nil
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) || s.normalizer == nil {
		return err
	}
	c, nErr := s.normalizer.Normalize(ctx, string(raw))
	if nErr != nil {
		return err // surface the original validation failure
	}
	s.install(c)
	return nil
}

// Reset drops the session override, returning reads to the base catalog.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = nil
}

func (s *Store) install(c *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = c
}
