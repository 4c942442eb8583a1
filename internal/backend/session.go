package backend

import (
	"sync"
	"time"
)

// Session is the bearer credential attached to outgoing requests. One Session
// belongs to one console workspace; it is overwritten, never merged, each
// time a token is established.
type Session struct {
	mu      sync.RWMutex
	token   string
	expires time.Time
}

func (s *Session) Set(token string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expires = expires
}

func (s *Session) Clear() {
	s.Set("", time.Time{})
}

// Token returns the bearer value, or "" when none is installed.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Expires() time.Time {
	if s == nil {
		return time.Time{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expires
}
