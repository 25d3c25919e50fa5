package jobs

import (
	"context"
	"log"
	"time"
)

// DefaultSweepInterval is how often expired sessions are evicted.
const DefaultSweepInterval = 10 * time.Minute

// SessionSweeper evicts sessions past their TTL.
type SessionSweeper interface {
	Sweep(now time.Time) int
}

// SweepProcessor adapts a session store's sweep to the worker loop.
type SweepProcessor struct {
	store SessionSweeper
}

// NewSweepProcessor creates a sweep processor over store.
func NewSweepProcessor(store SessionSweeper) *SweepProcessor {
	return &SweepProcessor{store: store}
}

// Run implements the Processor interface.
func (p *SweepProcessor) Run(_ context.Context) error {
	if removed := p.store.Sweep(time.Now()); removed > 0 {
		log.Printf("session sweep removed %d expired session(s)", removed)
	}
	return nil
}
