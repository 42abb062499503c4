package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one logged-in browser session.
type Session struct {
	Username string
	Role     Role
	Expires  time.Time
}

// Sessions is an in-memory session table keyed by opaque token. Sessions do
// not survive a restart; the durable stores do not know about them.
type Sessions struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]Session

	// now is injected for expiry tests; defaults to time.Now.
	now func() time.Time
}

// NewSessions creates a session table with the given time-to-live.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl: ttl,
		m:   make(map[string]Session),
		now: time.Now,
	}
}

// Create registers a session and returns its opaque token.
func (s *Sessions) Create(username string, role Role) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.m[token] = Session{
		Username: username,
		Role:     role,
		Expires:  s.now().Add(s.ttl),
	}
	return token
}

// Get resolves a token. Expired sessions are dropped on lookup.
func (s *Sessions) Get(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.m[token]
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.Expires) {
		delete(s.m, token)
		return Session{}, false
	}
	return sess, true
}

// Delete removes a session (logout). Unknown tokens are a no-op.
func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
}
