package systems

import (
	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/config"
)

// Geometry holds the sizes and penalty used for collision tests.
// Lanes are disjoint bands, so two regions can only meet when they share a lane,
// and within a lane a region is the interval [X, X+size).
type Geometry struct {
	CarLength    float64
	ObstacleSize float64
	PickupSize   float64
	Penalty      float64 // Fraction of the displacement lost on an unshielded obstacle hit
}

// NewGeometry extracts collision geometry from a config.
func NewGeometry(cfg *config.Config) Geometry {
	return Geometry{
		CarLength:    cfg.Cars.Length,
		ObstacleSize: cfg.Obstacles.Size,
		PickupSize:   cfg.Pickups.Size,
		Penalty:      cfg.Obstacles.Penalty,
	}
}

// Outcome describes what one movement step did.
type Outcome struct {
	Moved        bool
	Blocked      bool
	BlockedBy    int     // ID of the car that rejected the move
	ObstaclesHit int     // Obstacles deactivated this step
	Absorbed     int     // Of those, how many the shield cancelled
	Penalty      float64 // Distance pulled back
	Pickups      []components.PickupKind
}

// Overlaps reports whether [aX, aX+aLen) and [bX, bX+bLen) intersect.
func Overlaps(aX, aLen, bX, bLen float64) bool {
	return aX < bX+bLen && bX < aX+aLen
}

// Resolve validates and applies a forward move of displacement for car.
//
// The caller must hold the world lock. Checks run in a fixed order:
//  1. Another unfinished car in the lane overlapping the candidate region rejects
//     the move outright. Nothing else is evaluated for a rejected move.
//  2. Every active obstacle overlapping the candidate region is deactivated. Without
//     a shield the car is pulled back by Penalty*displacement, once per step.
//  3. Every active pickup overlapping the candidate region is deactivated and its
//     effect applied.
func Resolve(track *Track, cars []*components.Car, car *components.Car, displacement float64, geom Geometry, effects EffectConfig) Outcome {
	var out Outcome
	candidate := car.X + displacement

	for _, other := range cars {
		// Finished cars have left the track
		if other == car || other.Finished || other.Lane != car.Lane {
			continue
		}
		if Overlaps(candidate, geom.CarLength, other.X, geom.CarLength) {
			out.Blocked = true
			out.BlockedBy = other.ID
			car.Blocked++
			return out
		}
	}

	car.X = candidate
	out.Moved = true

	shielded := car.Effects.Shielded()
	query := track.obstacleFilter.Query()
	for query.Next() {
		pos, obs := query.Get()
		if !obs.Active || pos.Lane != car.Lane {
			continue
		}
		if Overlaps(candidate, geom.CarLength, pos.X, geom.ObstacleSize) {
			obs.Active = false
			out.ObstaclesHit++
		}
	}
	if out.ObstaclesHit > 0 {
		car.ObstaclesHit += out.ObstaclesHit
		if shielded {
			out.Absorbed = out.ObstaclesHit
			car.Absorbed += out.ObstaclesHit
		} else {
			out.Penalty = displacement * geom.Penalty
			car.X -= out.Penalty
		}
	}

	pquery := track.pickupFilter.Query()
	for pquery.Next() {
		pos, p := pquery.Get()
		if !p.Active || pos.Lane != car.Lane {
			continue
		}
		if Overlaps(candidate, geom.CarLength, pos.X, geom.PickupSize) {
			p.Active = false
			ApplyPickup(car, p.Kind, effects)
			out.Pickups = append(out.Pickups, p.Kind)
			car.Pickups++
		}
	}

	return out
}

// LaneFree reports whether car could occupy lane at its current position
// without overlapping another unfinished car.
func LaneFree(cars []*components.Car, car *components.Car, lane int, geom Geometry) bool {
	for _, other := range cars {
		if other == car || other.Finished || other.Lane != lane {
			continue
		}
		if Overlaps(car.X, geom.CarLength, other.X, geom.CarLength) {
			return false
		}
	}
	return true
}
