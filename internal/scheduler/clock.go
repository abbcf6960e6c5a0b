package scheduler

import (
	"sync"
	"time"
)

// Clock is the time source the scheduler sleeps against.
type Clock interface {
	Now() time.Time
	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// RealClock delegates to the time package.
type RealClock struct{}

func (RealClock) Now() time.Time                         { return time.Now() }
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// ManualClock is a virtual clock for tests. After advances the virtual time
// by d immediately and fires, so a full scheduler run completes instantly.
// Jumps registered with JumpAfter simulate a suspend/resume or an NTP step
// occurring during a particular sleep.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
	jumps  map[int]time.Duration
}

// NewManualClock creates a virtual clock set to t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t, jumps: make(map[int]time.Duration)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d + c.jumps[len(c.sleeps)])
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// Advance moves the virtual time forward by d without recording a sleep.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// JumpAfter adds d (which may be negative) to the clock at the end of the
// n-th sleep, counting from 1.
func (c *ManualClock) JumpAfter(n int, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jumps[n] = d
}

// Sleeps returns every duration passed to After so far.
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

var (
	_ Clock = RealClock{}
	_ Clock = (*ManualClock)(nil)
)
