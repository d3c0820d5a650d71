package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/raceway/telemetry"
)

// RunRace starts a race and drives it to completion on the calling goroutine.
//
// Each frame the interactive car, if any, is advanced once when autopilot is
// set. The race is settled once every autonomous car has finished, and the
// interactive car too under autopilot. The race is stopped, not reset, before
// RunRace returns so the report reflects the final state. A cancelled ctx
// stops the race early and returns the partial report with ctx.Err().
func (g *Game) RunRace(ctx context.Context, autopilot bool) (RaceReport, error) {
	if !g.StartRace() {
		if err := g.Err(); err != nil {
			return RaceReport{}, err
		}
		return RaceReport{}, ErrNotStarted
	}

	ticker := time.NewTicker(g.cfg.Derived.FrameInterval)
	defer ticker.Stop()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break loop
		case <-ticker.C:
		}

		if autopilot {
			g.ApplyPlayerInput(DirAdvance)
		}
		if g.settled(autopilot) {
			break loop
		}
	}

	if err := g.StopRace(); err != nil {
		return RaceReport{}, err
	}
	return g.Report(), runErr
}

// settled reports whether every car that is being driven has finished.
func (g *Game) settled(autopilot bool) bool {
	w := g.world
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, c := range w.cars {
		if c.Interactive() && !autopilot {
			continue
		}
		if !c.Finished {
			return false
		}
	}
	return true
}

// RunHeadless runs races back to back, writing each race's results to out,
// and resets the world between races. out may be nil.
func (g *Game) RunHeadless(ctx context.Context, races int, out *telemetry.OutputManager, autopilot bool) error {
	for i := 0; i < races; i++ {
		report, err := g.RunRace(ctx, autopilot)
		interrupted := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		if err != nil && !interrupted {
			return fmt.Errorf("race %d: %w", i+1, err)
		}

		report.Summary.LogSummary()
		if werr := writeReport(out, report, g.cfg.Telemetry.SnapshotOnFinish); werr != nil {
			return fmt.Errorf("race %d: %w", i+1, werr)
		}

		if interrupted {
			slog.Info("headless run interrupted", "races_completed", i)
			return nil
		}

		if err := g.ResetRace(); err != nil {
			return fmt.Errorf("reset after race %d: %w", i+1, err)
		}
	}
	return nil
}

func writeReport(out *telemetry.OutputManager, report RaceReport, snapshot bool) error {
	if out == nil {
		return nil
	}
	if err := out.WriteResults(report.Results); err != nil {
		return err
	}
	if err := out.WriteSummary(report.Summary); err != nil {
		return err
	}
	if snapshot {
		if _, err := out.WriteSnapshot(report.Snapshot); err != nil {
			return err
		}
	}
	return nil
}
