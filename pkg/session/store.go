// Package session keeps per-browser OAuth state: a cookie-addressed
// in-memory store for the user's Box token, and the application-level
// Forge token shared by all sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Session holds the OAuth state for one browser session.
type Session struct {
	ID        string
	BoxToken  *oauth2.Token
	ExpiresAt time.Time
}

// BoxAuthorized reports whether the session carries a usable Box token.
func (s *Session) BoxAuthorized() bool {
	return s.BoxToken != nil && s.BoxToken.Valid()
}

// Store is an in-memory session store. Sessions expire after a fixed TTL
// and are purged lazily on access.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewStore creates a session store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session and returns it.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpired()

	sess := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session for id, or false if unknown or expired.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	return sess, true
}

// SetBoxToken stores the Box token on an existing session and renews
// its expiry.
func (s *Store) SetBoxToken(id string, token *oauth2.Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.BoxToken = token
	sess.ExpiresAt = time.Now().Add(s.ttl)
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// purgeExpired removes expired sessions. Caller must hold the write lock.
func (s *Store) purgeExpired() {
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
