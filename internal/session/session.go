// Package session holds per-caller authentication state keyed by an
// opaque token. The session carries only the authenticated flag and the
// username; credentials are never stored.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session is one caller's ephemeral state. Username is set iff
// Authenticated is true.
type Session struct {
	Authenticated bool
	Username      string
}

// Store is an in-memory token -> Session map. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// NewToken returns a fresh opaque session token.
func NewToken() string {
	return uuid.NewString()
}

// Get returns the session for token and whether one exists.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

// Put stores sess under token, replacing any previous state.
func (s *Store) Put(token string, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sess
}

// Forget removes the session for token. No-op if absent.
func (s *Store) Forget(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
