// Package session holds per-run knowledge bases keyed by opaque tokens,
// with a status lifecycle and time-based eviction. The store is the only
// shared mutable state in the system: it is written by the handler creating
// a session, by that session's background pipeline, and by the periodic
// sweep, and read by concurrent status polls and chat requests.
package session

import (
	"sync"
	"time"

	"github.com/cloo-solutions/sitechat/internal/domain"
	"github.com/google/uuid"
)

// DefaultTTL is how long a session may live before the sweep evicts it,
// regardless of status.
const DefaultTTL = 30 * time.Minute

// Store is a mutex-guarded in-memory session map.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
}

// NewStore creates a store evicting sessions older than ttl. A non-positive
// ttl falls back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
	}
}

// Create registers a new scraping session for seedURL and returns it. The
// identifier is a fresh opaque token.
func (s *Store) Create(seedURL string) domain.Session {
	sess := &domain.Session{
		ID:            uuid.NewString(),
		SeedURL:       seedURL,
		Status:        domain.SessionStatusScraping,
		KnowledgeBase: &domain.KnowledgeBase{},
		CreatedAt:     time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns a snapshot of the session. Readers get a copy so a concurrent
// Ready or Delete can never expose a half-written session.
func (s *Store) Get(id string) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	return *sess, true
}

// Ready atomically attaches the assembled knowledge base and flips the
// session to ready. Returns false when the session no longer exists (for
// example, swept mid-pipeline).
func (s *Store) Ready(id string, kb *domain.KnowledgeBase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.KnowledgeBase = kb
	sess.Status = domain.SessionStatusReady
	return true
}

// Delete removes the session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep deletes every session whose age meets or exceeds the TTL at now,
// independent of status, and returns how many were removed. Idempotent:
// a second pass with the same clock removes nothing further.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Age(now) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
