package game

import (
	"time"

	"github.com/pthm-cable/raceway/systems"
)

// Direction is one player control input.
type Direction uint8

const (
	DirAdvance Direction = iota
	DirLaneUp
	DirLaneDown
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirAdvance:
		return "advance"
	case DirLaneUp:
		return "lane_up"
	case DirLaneDown:
		return "lane_down"
	}
	return "unknown"
}

// playerInput is the interactive car's boundary-side state, guarded by inputMu.
type playerInput struct {
	raceID         string
	lastInput      time.Duration // race clock at the last advance
	lastLaneChange time.Time     // wall clock
}

// ApplyPlayerInput drives the interactive car. It returns whether the input
// changed the world. Input is ignored unless the race is active and not
// paused, and the car has not finished. The car keeps racing after another
// car wins.
func (g *Game) ApplyPlayerInput(dir Direction) bool {
	g.inputMu.Lock()
	defer g.inputMu.Unlock()

	switch dir {
	case DirAdvance:
		return g.advancePlayer()
	case DirLaneUp:
		return g.changeLane(-1)
	case DirLaneDown:
		return g.changeLane(1)
	}
	return false
}

// advancePlayer commits one forward step. The caller holds inputMu.
func (g *Game) advancePlayer() bool {
	w := g.world
	w.mu.Lock()
	car := w.player
	if car == nil || car.Finished || !w.acceptsInput() || !g.active.Load() {
		w.mu.Unlock()
		return false
	}
	raceID := w.raceID
	current := car.Effects
	base := car.BaseSpeed
	w.mu.Unlock()

	now := g.clock.Elapsed()
	if g.input.raceID != raceID {
		g.input = playerInput{raceID: raceID, lastInput: now}
	}
	dt := (now - g.input.lastInput).Seconds()
	g.input.lastInput = now

	effects := systems.AgeEffects(current, dt)
	speed := systems.EffectiveSpeed(base, effects, g.effects)
	return g.commitStep(car, effects, speed*g.cfg.Movement.PlayerFactor) != stepRejected
}

// changeLane moves the interactive car by delta lanes. The caller holds inputMu.
func (g *Game) changeLane(delta int) bool {
	if time.Since(g.input.lastLaneChange) < g.cfg.Derived.LaneChangeCooldown {
		return false
	}

	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()

	car := w.player
	if car == nil || car.Finished || !w.acceptsInput() || !g.active.Load() {
		return false
	}
	lane := car.Lane + delta
	if lane < 0 || lane >= w.lanes {
		return false
	}
	if !systems.LaneFree(w.cars, car, lane, g.geom) {
		return false
	}

	car.Lane = lane
	g.input.lastLaneChange = time.Now()
	return true
}
