package testutil

import (
	"sync"
	"time"
)

// Clock yields deterministic, strictly increasing timestamps for tests.
//
// Each call to Now returns the current instant and advances the clock by
// a fixed step, so consecutive ledger entries carry distinct ascending
// timestamps without sleeping.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// Epoch is the conventional starting instant for deterministic tests and
// golden snapshots.
var Epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// NewClock creates a clock that starts at start and advances by step on
// every Now call. A zero start falls back to Epoch; a zero step falls
// back to one second.
func NewClock(start time.Time, step time.Duration) *Clock {
	if start.IsZero() {
		start = Epoch
	}
	if step == 0 {
		step = time.Second
	}
	return &Clock{now: start, step: step}
}

// Now returns the current instant, then advances the clock by one step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the instant the next Now call will return, without
// advancing.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set repositions the clock. Used to simulate clock skew.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
