package memory

import (
	"errors"
	"sync"

	interfaces "github.com/lobus/superapp-ledger/internal/interfaces"
)

var ErrEmptyToken = errors.New("session token is empty")

// SessionStore is an in-memory implementation of interfaces.SessionStore.
// It is safe for concurrent use.
type SessionStore[S any] struct {
	mu       sync.RWMutex // protects sessions
	sessions map[string]S
}

// NewSessionStore creates an empty store
func NewSessionStore[S any]() *SessionStore[S] {
	return &SessionStore[S]{
		sessions: make(map[string]S),
	}
}

// Save stores session under token, replacing any previous value.
func (m *SessionStore[S]) Save(token string, session S) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = session
	return nil
}

func (m *SessionStore[S]) Get(token string) (S, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	return s, ok
}

// Delete removes and returns the session stored under token
func (m *SessionStore[S]) Delete(token string) (S, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if ok {
		delete(m.sessions, token)
	}
	return s, ok
}

// List returns the live sessions in no particular order
func (m *SessionStore[S]) List() []S {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]S, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

func (m *SessionStore[S]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Compile-time check: ensure SessionStore implements the interface
var _ interfaces.SessionStore[int] = (*SessionStore[int])(nil)
