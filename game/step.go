package game

import (
	"time"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/systems"
)

// stepStatus reports what a commit did.
type stepStatus uint8

const (
	stepCommitted stepStatus = iota // Move validated and applied
	stepFinished                    // Car is finished, now or earlier
	stepRejected                    // Race stopped or not accepting this car's input
)

// commitStep is the locked commit path shared by workers and the interactive car.
//
// effects are the car's status effects aged by its driver outside the lock;
// displacement is the candidate forward move. The active flag is checked again
// here because a stop may have happened while the caller waited for the lock.
func (g *Game) commitStep(car *components.Car, effects components.StatusEffects, displacement float64) stepStatus {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()
	held := time.Now()

	if !g.active.Load() {
		return stepRejected
	}
	if car.Finished {
		return stepFinished
	}
	if car.Interactive() && !w.acceptsInput() {
		return stepRejected
	}

	car.Effects = effects
	car.Speed = systems.EffectiveSpeed(car.BaseSpeed, effects, g.effects)

	now := g.clock.Elapsed()
	out := systems.Resolve(w.track, w.cars, car, displacement, g.geom, g.effects)
	w.recordOutcome(car, out, now)

	status := stepCommitted
	if car.X >= w.finishX {
		w.finishCount++
		car.Finished = true
		car.FinishTime = now
		car.FinishOrder = w.finishCount
		w.recordFinish(car)

		paused := w.phase == PhasePaused
		if w.declareWinner(car) {
			w.recordWinner(car)
			// A step that passed the gate before a pause won. Pause is
			// refused once finished, so reopen for the remaining cars.
			if paused {
				g.clock.Resume()
				g.gate.Resume()
			}
		}
		status = stepFinished
	}

	w.collector.RecordLockHold(time.Since(held))
	return status
}
