// Package sessions holds server-side proof of authentication keyed by an
// opaque token carried in a cookie. Tokens expire on a sliding window.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie issued at login.
const CookieName = "plantas_session"

// Identity is what a session proves. The static admin has IsAdmin set and
// no UserID; registered users carry their document id. Downstream code
// branches on IsAdmin, never on credential strings.
type Identity struct {
	UserID  string
	Nombre  string
	Email   string
	IsAdmin bool
}

type entry struct {
	identity  Identity
	expiresAt time.Time
}

// Store is an in-memory keyed session store with TTL lifecycle. Get
// extends the expiry, matching the original's sliding 24-hour cookies.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, items: map[string]entry{}}
}

// TTL reports the configured session lifetime, for cookie Max-Age.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create issues a fresh opaque token for the identity.
func (s *Store) Create(identity Identity) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.items[token] = entry{identity: identity, expiresAt: time.Now().Add(s.ttl)}
	return token
}

// Get resolves a token, refreshing its expiry. The second result is false
// for unknown or expired tokens.
func (s *Store) Get(token string) (Identity, bool) {
	if token == "" {
		return Identity{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[token]
	if !ok {
		return Identity{}, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.items, token)
		return Identity{}, false
	}
	e.expiresAt = time.Now().Add(s.ttl)
	s.items[token] = e
	return e.identity, true
}

// Update replaces the identity of a live session, keeping its token and
// expiry. Used when a profile edit changes the display name.
func (s *Store) Update(token string, identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.items[token]; ok {
		e.identity = identity
		s.items[token] = e
	}
}

// Destroy removes a session. Destroying an absent token is not an error.
func (s *Store) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *Store) sweepLocked() {
	now := time.Now()
	for token, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, token)
		}
	}
}
