package game

import (
	"testing"
	"time"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time           { return f.t }
func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestRaceClockExcludesPauses(t *testing.T) {
	f := &fakeNow{t: time.Unix(1000, 0)}
	c := newRaceClock(f.now)
	c.Start()

	f.advance(2 * time.Second)
	if got := c.Elapsed(); got != 2*time.Second {
		t.Fatalf("Elapsed = %v, want 2s", got)
	}

	c.Pause()
	f.advance(5 * time.Second)
	if got := c.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed while paused = %v, want 2s", got)
	}

	c.Resume()
	f.advance(time.Second)
	if got := c.Elapsed(); got != 3*time.Second {
		t.Errorf("Elapsed after resume = %v, want 3s", got)
	}

	c.Start()
	if got := c.Elapsed(); got != 0 {
		t.Errorf("Elapsed after restart = %v, want 0", got)
	}
}

func TestRaceClockRepeatedPauseResume(t *testing.T) {
	f := &fakeNow{t: time.Unix(0, 0)}
	c := newRaceClock(f.now)
	c.Start()

	for i := 0; i < 3; i++ {
		f.advance(time.Second)
		c.Pause()
		c.Pause()
		f.advance(10 * time.Second)
		c.Resume()
		c.Resume()
	}
	if got := c.Elapsed(); got != 3*time.Second {
		t.Errorf("Elapsed = %v, want 3s", got)
	}
}
