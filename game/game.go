// Package game runs the race: shared world state, one worker goroutine per
// autonomous car, the pause gate, winner arbitration and the lifecycle commands
// the presentation layer calls.
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/raceway/config"
	"github.com/pthm-cable/raceway/systems"
)

// Options configures a Game beyond the race config.
type Options struct {
	Seed         int64 // RNG seed (0 = time-based)
	RecentEvents int   // Events kept for display (0 = default)
}

// Game owns the world state and the workers that mutate it.
//
// Lock order: ctlMu, then inputMu, then the world lock. The pause gate and the
// race clock have their own internal locks and never call back into the game.
type Game struct {
	cfg     *config.Config
	geom    systems.Geometry
	effects systems.EffectConfig
	layout  systems.Layout
	seed    int64
	recent  int

	world *World
	gate  *PauseGate
	clock *raceClock
	pool  *workerPool

	// active is true from StartRace until StopRace. Workers poll it after the
	// gate and again after taking the world lock.
	active atomic.Bool

	// ctlMu serializes lifecycle commands
	ctlMu  sync.Mutex
	rng    *rand.Rand // setup randomness, used under ctlMu
	failed error      // sticky teardown failure

	// inputMu serializes the interactive car's control path
	inputMu sync.Mutex
	input   playerInput
}

// NewGame creates a game with a freshly laid out world.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:     cfg,
		geom:    systems.NewGeometry(cfg),
		effects: systems.NewEffectConfig(cfg),
		layout:  systems.NewLayout(cfg),
		seed:    seed,
		recent:  opts.RecentEvents,
		gate:    NewPauseGate(),
		clock:   newRaceClock(time.Now),
		pool:    &workerPool{},
		rng:     rand.New(rand.NewSource(seed)),
	}
	g.world = newWorld(cfg, systems.NewTrack(cfg.Obstacles.Size, cfg.Pickups.Size))

	g.ctlMu.Lock()
	g.world.mu.Lock()
	g.setupLocked()
	g.world.mu.Unlock()
	g.ctlMu.Unlock()

	return g, nil
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.seed
}

// Err returns the sticky teardown failure, if any.
func (g *Game) Err() error {
	g.ctlMu.Lock()
	defer g.ctlMu.Unlock()
	return g.failed
}

// Close stops the race for process exit.
func (g *Game) Close() error {
	return g.StopRace()
}

// stepInterval is the worker throttle. It paces updates only; nothing relies on it for ordering.
func (g *Game) stepInterval() time.Duration {
	return g.cfg.Derived.StepInterval
}
