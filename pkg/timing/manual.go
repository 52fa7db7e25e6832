package timing

import (
	"sync"
	"time"
)

// ManualClock is a controllable Clock for deterministic tests. Time only
// moves when the test calls Advance or Set. Timers armed through Timers()
// fire during Advance, in deadline order, with Now reporting each timer's
// deadline while its callback runs.
//
// All methods are safe for concurrent use.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	nextID int
	timers []*manualTimer
}

type manualTimer struct {
	id       int
	deadline time.Time
	fn       func()
}

// NewManualClock returns a ManualClock starting at a fixed epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to an exact time without firing timers.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d, firing every timer whose
// deadline falls within the window, in deadline order. Timers armed by a
// firing callback also run if they come due before the window ends, so a
// callback that re-arms itself keeps ticking across a single Advance.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		t := c.popDueLocked(target)
		if t == nil {
			break
		}
		c.now = t.deadline
		c.mu.Unlock()
		t.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// popDueLocked removes and returns the earliest timer due at or before
// target, or nil if none is due.
func (c *ManualClock) popDueLocked(target time.Time) *manualTimer {
	idx := -1
	for i, t := range c.timers {
		if t.deadline.After(target) {
			continue
		}
		if idx == -1 || t.deadline.Before(c.timers[idx].deadline) {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	t := c.timers[idx]
	c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
	return t
}

// Timers returns a TimerSource whose timers are driven by this clock.
func (c *ManualClock) Timers() TimerSource {
	return manualTimers{clock: c}
}

// PendingTimers returns the number of armed timers.
func (c *ManualClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type manualTimers struct {
	clock *ManualClock
}

func (m manualTimers) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	c := m.clock
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.timers = append(c.timers, &manualTimer{id: id, deadline: c.now.Add(d), fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		for i, t := range c.timers {
			if t.id == id {
				c.timers = append(c.timers[:i], c.timers[i+1:]...)
				break
			}
		}
		c.mu.Unlock()
	}
}
