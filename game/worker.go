package game

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/systems"
)

// workerPool tracks the goroutines driving autonomous cars for one race.
type workerPool struct {
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	running bool
}

// start launches one goroutine per car. Each car gets its own rng so workers
// never share random state.
func (p *workerPool) start(g *Game, cars []*components.Car, seeds []int64) {
	if p.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true

	for i, car := range cars {
		p.wg.Add(1)
		go func(car *components.Car, rng *rand.Rand) {
			defer p.wg.Done()
			g.driveCar(ctx, car, rng)
		}(car, rand.New(rand.NewSource(seeds[i])))
	}
}

// stop cancels the workers and waits up to timeout for them to exit.
// On timeout the pool stays marked running; its goroutines are leaked.
func (p *workerPool) stop(timeout time.Duration) error {
	if !p.running {
		return nil
	}
	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.running = false
		return nil
	case <-time.After(timeout):
		return ErrTeardownTimeout
	}
}

// driveCar is the loop run by one autonomous car's worker.
//
// Every iteration passes the pause gate, checks the active flag, computes a
// displacement from local state and commits it through commitStep. The loop
// ends when the car finishes, the race stops or ctx is cancelled.
func (g *Game) driveCar(ctx context.Context, car *components.Car, rng *rand.Rand) {
	mv := g.cfg.Movement
	interval := g.stepInterval()
	throttle := time.NewTimer(interval)
	defer throttle.Stop()

	last := g.clock.Elapsed()
	for {
		if err := g.gate.Wait(ctx); err != nil {
			return
		}
		if !g.active.Load() {
			return
		}

		now := g.clock.Elapsed()
		dt := (now - last).Seconds()
		last = now

		// Only this goroutine writes car, so its own fields are readable unlocked
		effects := systems.AgeEffects(car.Effects, dt)
		speed := systems.EffectiveSpeed(car.BaseSpeed, effects, g.effects)
		displacement := speed * uniformJitter(rng, mv.JitterMin, mv.JitterMax)

		if g.commitStep(car, effects, displacement) != stepCommitted {
			slog.Debug("worker exit", "car", car.ID, "finished", car.Finished)
			return
		}

		throttle.Reset(interval)
		select {
		case <-ctx.Done():
			return
		case <-throttle.C:
		}
	}
}

func uniformJitter(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
