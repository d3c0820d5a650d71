package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/systems"
	"github.com/pthm-cable/raceway/telemetry"
)

// The record* helpers run under the world lock from commitStep.

func (w *World) recordOutcome(car *components.Car, out systems.Outcome, now time.Duration) {
	if out.Blocked {
		w.collector.Record(telemetry.Event{Type: telemetry.EventMoveBlocked, RaceTime: now, CarID: car.ID, OtherID: out.BlockedBy})
		return
	}
	if out.ObstaclesHit > 0 {
		if out.Absorbed > 0 {
			w.collector.Record(telemetry.Event{Type: telemetry.EventShieldAbsorb, RaceTime: now, CarID: car.ID})
		} else {
			w.collector.Record(telemetry.Event{Type: telemetry.EventObstacleHit, RaceTime: now, CarID: car.ID, Amount: out.Penalty})
		}
	}
	for _, kind := range out.Pickups {
		w.collector.Record(telemetry.Event{Type: telemetry.EventPickup, RaceTime: now, CarID: car.ID, Kind: kind})
	}
}

func (w *World) recordFinish(car *components.Car) {
	w.collector.Record(telemetry.Event{Type: telemetry.EventFinish, RaceTime: car.FinishTime, CarID: car.ID})
	slog.Debug("car finished",
		"race_id", w.raceID,
		"car", car.ID,
		"order", car.FinishOrder,
		"time", car.FinishTime.Seconds(),
	)
}

func (w *World) recordWinner(car *components.Car) {
	w.collector.Record(telemetry.Event{Type: telemetry.EventWinner, RaceTime: car.FinishTime, CarID: car.ID})
	slog.Info("winner declared",
		"race_id", w.raceID,
		"car", car.ID,
		"interactive", car.Interactive(),
		"time", car.FinishTime.Seconds(),
	)
}

// RaceReport is the outcome of one race.
type RaceReport struct {
	Results  []telemetry.RaceResult
	Summary  telemetry.RaceSummary
	Snapshot *telemetry.Snapshot
}

// Report builds the results, summary and persisted snapshot of the current race.
func (g *Game) Report() RaceReport {
	snap := g.Snapshot()

	w := g.world
	w.mu.Lock()
	results := w.standingsLocked()
	lockHold := w.collector.LockHoldSamples()
	w.mu.Unlock()

	return RaceReport{
		Results:  results,
		Summary:  telemetry.Summarize(snap.RaceID, results, lockHold),
		Snapshot: snap.Record(g.seed),
	}
}

// Record converts the snapshot into its persisted form.
func (s *Snapshot) Record(seed int64) *telemetry.Snapshot {
	out := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		RaceID:     s.RaceID,
		RNGSeed:    seed,
		Phase:      s.Phase.String(),
		ElapsedSec: s.Elapsed.Seconds(),
		FinishX:    s.FinishX,
	}
	if s.WinnerID >= 0 {
		id := s.WinnerID
		out.WinnerID = &id
	}

	for _, c := range s.Cars {
		out.Cars = append(out.Cars, telemetry.CarState{
			ID:          c.ID,
			Lane:        c.Lane,
			X:           c.X,
			BaseSpeed:   c.BaseSpeed,
			Speed:       c.Speed,
			Autonomous:  c.Autonomous,
			Finished:    c.Finished,
			FinishOrder: c.FinishOrder,
			FinishSec:   c.FinishTime.Seconds(),
			Boost:       c.Effects.BoostRemaining,
			Shield:      c.Effects.ShieldRemaining,
		})
	}
	for _, o := range s.Obstacles {
		out.Obstacles = append(out.Obstacles, telemetry.ItemState{X: o.X, Lane: o.Lane, Active: o.Active})
		if o.Active {
			out.ActiveItems++
		}
	}
	for _, p := range s.Pickups {
		out.Pickups = append(out.Pickups, telemetry.ItemState{X: p.X, Lane: p.Lane, Active: p.Active, Kind: p.Kind.String()})
		if p.Active {
			out.ActiveItems++
		}
	}
	return out
}
