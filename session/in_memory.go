package session

import "sync"

// Factory builds a fully wired session for an id. The workspace façade
// supplies one that shares the base catalog and adapters while giving each
// session its own resolver, log and workflow.
type Factory func(id string) *Session

// InMemoryStore is a volatile session registry keyed by id. It is safe for
// concurrent access and suited to single-process deployments; persistent
// multi-user storage is out of scope by design. Sessions are returned by
// reference; they hold live state and are owned by their one caller.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  Factory
}

// NewInMemoryStore constructs an empty store around the given factory.
func NewInMemoryStore(factory Factory) *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*Session), factory: factory}
}

// Get returns the session for id, creating it lazily.
func (s *InMemoryStore) Get(id string) *Session {
	s.mu.RLock()
	if sess, ok := s.sessions[id]; ok {
		s.mu.RUnlock()
		return sess
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := s.factory(id)
	s.sessions[id] = sess
	return sess
}

// Delete removes the session for id, discarding its state.
func (s *InMemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
