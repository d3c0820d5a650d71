// Package systems provides the race rules: track item storage, collision
// resolution and status effects. Nothing here locks; callers hold the world lock.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/config"
)

// Layout describes where track items may be placed and how large they are.
type Layout struct {
	Lanes   int
	StartX  float64
	FinishX float64

	ObstacleCount  int
	ObstacleSize   float64
	ObstacleMargin float64

	PickupCount  int
	PickupSize   float64
	PickupMargin float64
}

// NewLayout extracts the track layout from a config.
func NewLayout(cfg *config.Config) Layout {
	return Layout{
		Lanes:          cfg.Track.Lanes,
		StartX:         cfg.Track.StartX,
		FinishX:        cfg.Track.FinishX,
		ObstacleCount:  cfg.Obstacles.Count,
		ObstacleSize:   cfg.Obstacles.Size,
		ObstacleMargin: cfg.Obstacles.Margin,
		PickupCount:    cfg.Pickups.Count,
		PickupSize:     cfg.Pickups.Size,
		PickupMargin:   cfg.Pickups.Margin,
	}
}

// ItemState is a plain copy of one track item, safe to hand to readers.
type ItemState struct {
	X      float64
	Lane   int
	Size   float64
	Active bool
	Kind   components.PickupKind // Meaningful for pickups only
}

// Track stores obstacles and pickups as ECS entities.
type Track struct {
	world *ecs.World

	obstacleMapper *ecs.Map2[components.TrackPos, components.Obstacle]
	pickupMapper   *ecs.Map2[components.TrackPos, components.Pickup]
	obstacleFilter *ecs.Filter2[components.TrackPos, components.Obstacle]
	pickupFilter   *ecs.Filter2[components.TrackPos, components.Pickup]

	obstacleSize float64
	pickupSize   float64
}

// NewTrack creates an empty track whose items have the given sizes.
func NewTrack(obstacleSize, pickupSize float64) *Track {
	world := ecs.NewWorld()
	return &Track{
		world:          world,
		obstacleMapper: ecs.NewMap2[components.TrackPos, components.Obstacle](world),
		pickupMapper:   ecs.NewMap2[components.TrackPos, components.Pickup](world),
		obstacleFilter: ecs.NewFilter2[components.TrackPos, components.Obstacle](world),
		pickupFilter:   ecs.NewFilter2[components.TrackPos, components.Pickup](world),
		obstacleSize:   obstacleSize,
		pickupSize:     pickupSize,
	}
}

// AddObstacle places an active obstacle.
func (t *Track) AddObstacle(x float64, lane int) ecs.Entity {
	return t.obstacleMapper.NewEntity(
		&components.TrackPos{X: x, Lane: lane},
		&components.Obstacle{Active: true},
	)
}

// AddPickup places an active pickup.
func (t *Track) AddPickup(x float64, lane int, kind components.PickupKind) ecs.Entity {
	return t.pickupMapper.NewEntity(
		&components.TrackPos{X: x, Lane: lane},
		&components.Pickup{Kind: kind, Active: true},
	)
}

// Populate clears the track and places a fresh random set of items.
// Items are kept out of the margin bands next to the start and finish lines.
func (t *Track) Populate(rng *rand.Rand, layout Layout) {
	t.Clear()

	for i := 0; i < layout.ObstacleCount; i++ {
		x := uniform(rng, layout.StartX+layout.ObstacleMargin, layout.FinishX-layout.ObstacleMargin)
		t.AddObstacle(x, rng.Intn(layout.Lanes))
	}

	for i := 0; i < layout.PickupCount; i++ {
		x := uniform(rng, layout.StartX+layout.PickupMargin, layout.FinishX-layout.PickupMargin)
		kind := components.PickupKind(rng.Intn(int(components.NumPickupKinds)))
		t.AddPickup(x, rng.Intn(layout.Lanes), kind)
	}
}

// Clear removes every item.
func (t *Track) Clear() {
	var toRemove []ecs.Entity

	// Entities cannot be removed while a query holds the world
	query := t.obstacleFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	pquery := t.pickupFilter.Query()
	for pquery.Next() {
		toRemove = append(toRemove, pquery.Entity())
	}

	for _, e := range toRemove {
		t.world.RemoveEntity(e)
	}
}

// Obstacles returns a copy of every obstacle.
func (t *Track) Obstacles() []ItemState {
	var items []ItemState
	query := t.obstacleFilter.Query()
	for query.Next() {
		pos, obs := query.Get()
		items = append(items, ItemState{X: pos.X, Lane: pos.Lane, Size: t.obstacleSize, Active: obs.Active})
	}
	return items
}

// Pickups returns a copy of every pickup.
func (t *Track) Pickups() []ItemState {
	var items []ItemState
	query := t.pickupFilter.Query()
	for query.Next() {
		pos, p := query.Get()
		items = append(items, ItemState{X: pos.X, Lane: pos.Lane, Size: t.pickupSize, Active: p.Active, Kind: p.Kind})
	}
	return items
}

// ActiveCounts returns how many obstacles and pickups are still active.
func (t *Track) ActiveCounts() (obstacles, pickups int) {
	query := t.obstacleFilter.Query()
	for query.Next() {
		_, obs := query.Get()
		if obs.Active {
			obstacles++
		}
	}
	pquery := t.pickupFilter.Query()
	for pquery.Next() {
		_, p := pquery.Get()
		if p.Active {
			pickups++
		}
	}
	return obstacles, pickups
}

// uniform returns a value in [lo, hi].
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
