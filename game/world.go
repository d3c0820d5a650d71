package game

import (
	"sort"
	"sync"
	"time"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/config"
	"github.com/pthm-cable/raceway/systems"
	"github.com/pthm-cable/raceway/telemetry"
)

// Phase is the externally visible race phase.
type Phase uint8

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseFinished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// acceptsInput reports whether the interactive car may move. Like the workers
// it keeps racing after the winner is declared, but not while paused.
func (w *World) acceptsInput() bool {
	return w.phase == PhaseRunning || w.phase == PhaseFinished
}

// World is the authoritative race state. A single mutex guards every field;
// a car's full step (move, collision side effects, finish check) happens in one
// critical section so no reader sees a partial step.
type World struct {
	mu sync.Mutex

	phase  Phase
	raceID string
	raced  bool // a race ran on this layout; the next start lays out a fresh one

	cars   []*components.Car
	player *components.Car // nil when no car is interactive
	track  *systems.Track

	winner      *components.Car // set at most once per race
	finishCount int

	finishX   float64
	lanes     int
	collector *telemetry.Collector
}

func newWorld(cfg *config.Config, track *systems.Track) *World {
	return &World{
		track:   track,
		finishX: cfg.Track.FinishX,
		lanes:   cfg.Track.Lanes,
	}
}

// Snapshot is a consistent copy of the world taken under one lock acquisition.
type Snapshot struct {
	Phase    Phase
	RaceID   string
	Elapsed  time.Duration
	WinnerID int // -1 until a winner is declared
	Lanes    int
	FinishX  float64

	Cars      []components.Car
	Obstacles []systems.ItemState
	Pickups   []systems.ItemState
	Events    []telemetry.Event
}

// Winner returns the winning car, if any.
func (s *Snapshot) Winner() (components.Car, bool) {
	if s.WinnerID < 0 {
		return components.Car{}, false
	}
	for _, c := range s.Cars {
		if c.ID == s.WinnerID {
			return c, true
		}
	}
	return components.Car{}, false
}

// Player returns the interactive car, if any.
func (s *Snapshot) Player() (components.Car, bool) {
	for _, c := range s.Cars {
		if c.Interactive() {
			return c, true
		}
	}
	return components.Car{}, false
}

// Snapshot returns a consistent copy of the world for readers.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		Phase:     w.phase,
		RaceID:    w.raceID,
		WinnerID:  -1,
		Lanes:     w.lanes,
		FinishX:   w.finishX,
		Cars:      make([]components.Car, len(w.cars)),
		Obstacles: w.track.Obstacles(),
		Pickups:   w.track.Pickups(),
		Events:    w.collector.Recent(),
	}
	if w.raced {
		s.Elapsed = g.clock.Elapsed()
	}
	if w.winner != nil {
		s.WinnerID = w.winner.ID
	}
	for i, c := range w.cars {
		s.Cars[i] = *c
	}
	return s
}

// Standings returns per-car results, finishers first in finish order, then the
// rest by distance covered.
func (g *Game) Standings() []telemetry.RaceResult {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.standingsLocked()
}

func (w *World) standingsLocked() []telemetry.RaceResult {
	results := make([]telemetry.RaceResult, 0, len(w.cars))
	for _, c := range w.cars {
		results = append(results, telemetry.RaceResult{
			RaceID:       w.raceID,
			CarID:        c.ID,
			Lane:         c.Lane,
			Autonomous:   c.Autonomous,
			BaseSpeed:    c.BaseSpeed,
			Finished:     c.Finished,
			FinishOrder:  c.FinishOrder,
			FinishTime:   c.FinishTime.Seconds(),
			FinalX:       c.X,
			Winner:       c == w.winner,
			ObstaclesHit: c.ObstaclesHit,
			Absorbed:     c.Absorbed,
			Pickups:      c.Pickups,
			Blocked:      c.Blocked,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Finished != b.Finished {
			return a.Finished
		}
		if a.Finished {
			return a.FinishOrder < b.FinishOrder
		}
		return a.FinalX > b.FinalX
	})
	return results
}
