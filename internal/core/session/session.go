// Package session holds the signed-in user's credentials for the lifetime of
// the process. Nothing is written to disk.
package session

import (
	"sync"

	"github.com/colonyops/thinkthread/internal/core/feed"
)

// Session is an in-memory store for the auth token and current user.
// It is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	token string
	user  feed.User
}

// New returns an empty Session.
func New() *Session {
	return &Session{}
}

// Set stores the token and user returned by a successful login.
func (s *Session) Set(token string, user feed.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// SetToken stores a token without user details, e.g. one supplied on the
// command line.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetUser replaces the cached user, keeping the token.
func (s *Session) SetUser(user feed.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the cached user.
func (s *Session) User() feed.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = feed.User{}
}
