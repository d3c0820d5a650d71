// Package telemetry provides race event tracking, results, summaries and snapshots.
package telemetry

import (
	"fmt"
	"time"

	"github.com/pthm-cable/raceway/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventMoveBlocked EventType = iota
	EventObstacleHit
	EventShieldAbsorb
	EventPickup
	EventFinish
	EventWinner
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventMoveBlocked:
		return "move_blocked"
	case EventObstacleHit:
		return "obstacle_hit"
	case EventShieldAbsorb:
		return "shield_absorb"
	case EventPickup:
		return "pickup"
	case EventFinish:
		return "finish"
	case EventWinner:
		return "winner"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	RaceTime time.Duration
	CarID    int

	// Optional fields depending on event type
	OtherID int                   // blocking car for move_blocked
	Kind    components.PickupKind // pickup kind for pickup
	Amount  float64               // distance lost for obstacle_hit
}

// Describe renders the event as a short line for HUDs.
func (e Event) Describe() string {
	car := fmt.Sprintf("car %d", e.CarID+1)
	switch e.Type {
	case EventMoveBlocked:
		return fmt.Sprintf("%s blocked by car %d", car, e.OtherID+1)
	case EventObstacleHit:
		return fmt.Sprintf("%s hit an obstacle (-%.1f)", car, e.Amount)
	case EventShieldAbsorb:
		return fmt.Sprintf("%s shield absorbed an obstacle", car)
	case EventPickup:
		return fmt.Sprintf("%s picked up %s", car, e.Kind)
	case EventFinish:
		return fmt.Sprintf("%s finished in %.2fs", car, e.RaceTime.Seconds())
	case EventWinner:
		return fmt.Sprintf("%s wins", car)
	}
	return car
}
