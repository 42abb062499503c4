// Package testutil provides test doubles shared across packages.
package testutil

import (
	"sync"
	"time"
)

// Clock is a thread-safe, settable wall clock for tests.
//
// Unlike the system clock, Clock only moves when a test advances it, so
// history timestamps and retention cutoffs are fully deterministic.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// NewClock creates a clock pinned at t.
func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

// Now returns the pinned time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}
