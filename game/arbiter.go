package game

import "github.com/pthm-cable/raceway/components"

// declareWinner commits the race outcome. The caller holds the world lock and
// has just flipped car.Finished in the same critical section. Only the first
// finisher to get here wins; later finishers keep their finish data and change
// nothing else.
func (w *World) declareWinner(car *components.Car) bool {
	if w.winner != nil {
		return false
	}
	w.winner = car
	w.phase = PhaseFinished
	return true
}
