package domain

import "time"

// SessionStatus is the lifecycle state of a scrape session.
type SessionStatus string

const (
	// SessionStatusScraping means the background ingestion pipeline is
	// still populating the session's knowledge base.
	SessionStatusScraping SessionStatus = "scraping"
	// SessionStatusReady means the knowledge base is fully assembled and
	// available for retrieval.
	SessionStatusReady SessionStatus = "ready"
)

// Session is an isolated, time-bounded knowledge base instance identified
// by an opaque token. The only transition is scraping -> ready; a failed or
// empty ingestion run deletes the session instead of marking it failed.
type Session struct {
	ID            string
	SeedURL       string
	Status        SessionStatus
	KnowledgeBase *KnowledgeBase
	CreatedAt     time.Time
}

// Age returns how long the session has existed as of now.
func (s *Session) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}
