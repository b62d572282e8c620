package api

import (
	"strings"
	"sync"
)

// TokenStore holds the single bearer credential for the session.
// Implementations must treat an empty or whitespace-only token as
// "no session".
type TokenStore interface {
	// Token returns the stored bearer token, or "" when none exists.
	Token() string
	// SetToken stores the trimmed token. An empty or whitespace-only
	// value clears the store instead.
	SetToken(token string)
	// ClearToken removes the stored token. Idempotent.
	ClearToken()
}

// MemoryTokenStore keeps the token in memory only. Used by tests and
// short-lived tooling that must not leave a credential on disk.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

func (s *MemoryTokenStore) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
