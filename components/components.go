// Package components defines the race data types: cars, status effects and the
// ECS components used for track items.
package components

import "time"

// PickupKind identifies what a pickup does when collected.
type PickupKind uint8

const (
	PickupSpeedBoost PickupKind = iota // Multiplies speed for a fixed duration
	PickupShield                       // Cancels obstacle penalties for a fixed duration

	NumPickupKinds // Sentinel; keep last
)

// String returns the short name used in logs and CSV output.
func (k PickupKind) String() string {
	switch k {
	case PickupSpeedBoost:
		return "speed"
	case PickupShield:
		return "shield"
	}
	return "unknown"
}

// TrackPos places a track item on the track.
type TrackPos struct {
	X    float64
	Lane int
}

// Obstacle is a one-shot hazard. Inactive obstacles stay in the world but are inert.
type Obstacle struct {
	Active bool
}

// Pickup is a one-shot collectible.
type Pickup struct {
	Kind   PickupKind
	Active bool
}

// StatusEffects holds the remaining duration, in seconds, of each timed effect.
// Zero means the effect is not active.
type StatusEffects struct {
	BoostRemaining  float64
	ShieldRemaining float64
}

// Boosted reports whether a speed boost is active.
func (s StatusEffects) Boosted() bool { return s.BoostRemaining > 0 }

// Shielded reports whether a shield is active.
func (s StatusEffects) Shielded() bool { return s.ShieldRemaining > 0 }

// Car is a race participant.
//
// All fields are written only while the world lock is held. The goroutine that
// drives a car may read that car's fields without the lock, since no other
// goroutine writes them.
type Car struct {
	ID          int
	Lane        int
	X           float64
	BaseSpeed   float64 // Fixed at creation
	Speed       float64 // BaseSpeed adjusted by active effects
	Effects     StatusEffects
	Autonomous  bool // Driven by its own worker goroutine
	Finished    bool
	FinishTime  time.Duration // Race clock time at which X reached the finish line
	FinishOrder int           // 1 for the first car to finish, 0 while racing

	// Per-car counters for results
	ObstaclesHit int
	Absorbed     int
	Pickups      int
	Blocked      int
}

// Interactive reports whether the car is driven by the boundary rather than a worker.
func (c *Car) Interactive() bool { return !c.Autonomous }
