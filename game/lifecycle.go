package game

import (
	"log/slog"

	"github.com/segmentio/ksuid"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/telemetry"
)

// setupLocked lays out a fresh track and lines the cars up at the start.
// The caller holds ctlMu and the world lock, and no worker is running.
func (g *Game) setupLocked() {
	cfg := g.cfg
	w := g.world

	w.track.Populate(g.rng, g.layout)

	w.cars = make([]*components.Car, 0, cfg.Cars.Count)
	w.player = nil
	for i := 0; i < cfg.Cars.Count; i++ {
		base := cfg.Cars.BaseSpeed + (g.rng.Float64()*2-1)*cfg.Cars.SpeedVariance
		car := &components.Car{
			ID:         i,
			Lane:       i,
			X:          cfg.Track.StartX,
			BaseSpeed:  base,
			Speed:      base,
			Autonomous: !(cfg.Cars.Interactive && i == 0),
		}
		w.cars = append(w.cars, car)
		if car.Interactive() {
			w.player = car
		}
	}

	w.winner = nil
	w.finishCount = 0
	w.phase = PhaseNotStarted
	w.raceID = ""
	w.raced = false
	w.collector = telemetry.NewCollector("", g.recent)
}

// StartRace begins a race from NotStarted. It returns false, changing
// nothing, in any other phase or after a teardown failure.
func (g *Game) StartRace() bool {
	g.ctlMu.Lock()
	defer g.ctlMu.Unlock()
	if g.failed != nil {
		return false
	}

	w := g.world
	w.mu.Lock()
	if w.phase != PhaseNotStarted {
		w.mu.Unlock()
		return false
	}
	if w.raced {
		g.setupLocked()
	}

	w.raceID = ksuid.New().String()
	w.raced = true
	w.collector = telemetry.NewCollector(w.raceID, g.recent)
	w.phase = PhaseRunning

	var drivers []*components.Car
	var seeds []int64
	for _, c := range w.cars {
		if c.Autonomous {
			drivers = append(drivers, c)
			seeds = append(seeds, g.rng.Int63())
		}
	}

	g.clock.Start()
	g.gate.Resume()
	g.active.Store(true)
	raceID := w.raceID
	w.mu.Unlock()

	// Workers take the world lock on their first step, so spawn after releasing it
	g.pool.start(g, drivers, seeds)

	slog.Info("race started",
		"race_id", raceID,
		"cars", len(w.cars),
		"workers", len(drivers),
		"seed", g.seed,
	)
	return true
}

// StopRace stops a running or paused race and waits for its workers.
// The world keeps its state until ResetRace.
func (g *Game) StopRace() error {
	g.ctlMu.Lock()
	defer g.ctlMu.Unlock()
	return g.stopLocked()
}

// stopLocked tears the workers down. The caller holds ctlMu.
func (g *Game) stopLocked() error {
	if g.failed != nil {
		return g.failed
	}

	g.active.Store(false)
	// Paused workers must reach the active check to exit
	g.gate.Resume()

	if err := g.pool.stop(g.cfg.Derived.TeardownTimeout); err != nil {
		g.failed = err
		slog.Error("race teardown failed",
			"timeout", g.cfg.Derived.TeardownTimeout,
			"error", err,
		)
		return err
	}

	w := g.world
	w.mu.Lock()
	if w.phase == PhaseRunning || w.phase == PhasePaused {
		w.phase = PhaseNotStarted
		slog.Info("race stopped", "race_id", w.raceID)
	}
	w.mu.Unlock()
	g.clock.Pause()
	return nil
}

// ResetRace stops any race and lays out a fresh world in NotStarted.
// Calling it repeatedly is the same as calling it once.
func (g *Game) ResetRace() error {
	g.ctlMu.Lock()
	defer g.ctlMu.Unlock()

	if err := g.stopLocked(); err != nil {
		return err
	}

	g.inputMu.Lock()
	g.input = playerInput{}
	g.inputMu.Unlock()

	w := g.world
	w.mu.Lock()
	g.setupLocked()
	w.mu.Unlock()
	return nil
}

// TogglePause pauses a running race or resumes a paused one. It returns false
// in any other phase.
func (g *Game) TogglePause() bool {
	g.ctlMu.Lock()
	defer g.ctlMu.Unlock()

	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.phase {
	case PhaseRunning:
		g.gate.Pause()
		g.clock.Pause()
		w.phase = PhasePaused
	case PhasePaused:
		g.clock.Resume()
		w.phase = PhaseRunning
		g.gate.Resume()
	default:
		return false
	}
	slog.Info("race pause toggled", "race_id", w.raceID, "phase", w.phase.String())
	return true
}
