package glimpsetest

import (
	"sync"
	"time"

	"github.com/dshills/glimpse/internal/host"
)

// Clock is a fake clock. Timers scheduled on it fire only when the test
// calls Fire, so debounce behavior can be driven deterministically.
type Clock struct {
	mu     sync.Mutex
	timers []*Timer
}

// NewClock creates a clock with no scheduled timers.
func NewClock() *Clock { return &Clock{} }

// AfterFunc schedules fn to run on the next Fire call.
func (c *Clock) AfterFunc(d time.Duration, fn func()) host.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &Timer{d: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Fire runs all pending timers in scheduling order and returns how many
// fired. Callbacks run on the calling goroutine.
func (c *Clock) Fire() int {
	c.mu.Lock()
	var due []*Timer
	for _, t := range c.timers {
		if t.claim() {
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of scheduled timers that have neither fired
// nor been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if t.pending() {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recently scheduled timer and
// whether any timer was scheduled at all.
func (c *Clock) LastDelay() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.timers) == 0 {
		return 0, false
	}
	return c.timers[len(c.timers)-1].d, true
}

// Timer is a fake timer controlled by its Clock.
type Timer struct {
	mu      sync.Mutex
	d       time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// claim marks the timer fired if it is still pending.
func (t *Timer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.fired = true
	return true
}

func (t *Timer) pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped && !t.fired
}

// Stop prevents a pending timer from firing. It reports whether the call
// stopped the timer, mirroring time.Timer.Stop.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
