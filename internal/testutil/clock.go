// Package testutil provides deterministic helpers shared by the harness
// and its tests.
package testutil

import "sync"

// Clock is a monotonic logical clock. Harness traces are stamped with its
// sequence numbers instead of wall-clock time so that identical scenario
// runs produce identical traces for golden comparison.
type Clock struct {
	mu  sync.Mutex
	seq int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next increments and returns the next sequence number.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the latest issued sequence number.
func (c *Clock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock so a scenario can be re-run with identical
// sequence numbers.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
