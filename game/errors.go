package game

import "errors"

var (
	// ErrTeardownTimeout means a worker did not exit within the teardown window.
	// The world may still be mutated by that worker, so the game refuses to
	// start or reset again.
	ErrTeardownTimeout = errors.New("race worker did not exit before the teardown timeout")

	// ErrNotStarted is returned by RunRace when the race could not be started.
	ErrNotStarted = errors.New("race could not be started")
)
