package telemetry

import "time"

// Collector accumulates events for one race.
// It is not safe for concurrent use; the game records into it under the world lock.
type Collector struct {
	raceID    string
	maxRecent int

	recent []Event

	blocked      int
	obstaclesHit int
	absorbed     int
	pickups      int
	finishes     int

	// Time the world lock was held per committed step
	lockHold []float64
}

// NewCollector creates a collector for one race. maxRecent bounds the event
// history kept for display.
func NewCollector(raceID string, maxRecent int) *Collector {
	if maxRecent < 1 {
		maxRecent = 8
	}
	return &Collector{
		raceID:    raceID,
		maxRecent: maxRecent,
		recent:    make([]Event, 0, maxRecent),
	}
}

// RaceID returns the race this collector belongs to.
func (c *Collector) RaceID() string {
	return c.raceID
}

// Record counts an event and appends it to the recent history.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventMoveBlocked:
		c.blocked++
		// Blocked moves repeat every step while a car is stuck; keep them out of the history
		return
	case EventObstacleHit:
		c.obstaclesHit++
	case EventShieldAbsorb:
		c.absorbed++
	case EventPickup:
		c.pickups++
	case EventFinish:
		c.finishes++
	}

	if len(c.recent) == c.maxRecent {
		copy(c.recent, c.recent[1:])
		c.recent = c.recent[:len(c.recent)-1]
	}
	c.recent = append(c.recent, ev)
}

// RecordLockHold records how long one step held the world lock.
func (c *Collector) RecordLockHold(d time.Duration) {
	c.lockHold = append(c.lockHold, float64(d)/float64(time.Microsecond))
}

// Recent returns a copy of the most recent events, oldest first.
func (c *Collector) Recent() []Event {
	out := make([]Event, len(c.recent))
	copy(out, c.recent)
	return out
}

// Counts holds race-wide event totals.
type Counts struct {
	Blocked      int
	ObstaclesHit int
	Absorbed     int
	Pickups      int
	Finishes     int
}

// Counts returns the totals recorded so far.
func (c *Collector) Counts() Counts {
	return Counts{
		Blocked:      c.blocked,
		ObstaclesHit: c.obstaclesHit,
		Absorbed:     c.absorbed,
		Pickups:      c.pickups,
		Finishes:     c.finishes,
	}
}

// LockHoldSamples returns a copy of the lock hold samples in microseconds.
func (c *Collector) LockHoldSamples() []float64 {
	out := make([]float64, len(c.lockHold))
	copy(out, c.lockHold)
	return out
}
