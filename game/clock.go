package game

import (
	"sync"
	"time"
)

// raceClock measures race time with paused intervals excluded. Finish times
// and status effect durations are both read from it, so a pause neither
// lengthens a finish time nor burns down an active boost.
type raceClock struct {
	mu  sync.RWMutex
	now func() time.Time

	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
}

func newRaceClock(now func() time.Time) *raceClock {
	return &raceClock{now: now, start: now()}
}

// Start resets the clock to zero, running.
func (c *raceClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.paused = false
	c.pausedAt = time.Time{}
	c.pausedTotal = 0
}

// Elapsed returns race time since Start.
func (c *raceClock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused {
		// Frozen at the pause point
		return c.pausedAt.Sub(c.start) - c.pausedTotal
	}
	return c.now().Sub(c.start) - c.pausedTotal
}

// Pause freezes race time.
func (c *raceClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		c.paused = true
		c.pausedAt = c.now()
	}
}

// Resume continues race time.
func (c *raceClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.pausedTotal += c.now().Sub(c.pausedAt)
		c.paused = false
		c.pausedAt = time.Time{}
	}
}
