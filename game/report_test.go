package game

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/raceway/telemetry"
)

func TestReporterWritesOnce(t *testing.T) {
	g := newTestGame(t, testConfig())
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer out.Close()
	r := NewReporter(g, out)

	if r.Observe(g.Snapshot(), true) {
		t.Error("wrote a race that never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := g.RunRace(ctx, false); err != nil {
		t.Fatalf("RunRace: %v", err)
	}

	snap := g.Snapshot()
	if !r.Observe(snap, false) {
		t.Fatal("settled race not written")
	}
	if r.Observe(snap, false) || r.Observe(snap, true) {
		t.Error("race written twice")
	}

	snaps, _ := filepath.Glob(filepath.Join(dir, "snapshots", "*.json"))
	if len(snaps) != 1 {
		t.Errorf("%d snapshots, want 1", len(snaps))
	}
}

func TestReporterWaitsForStragglers(t *testing.T) {
	g := newTestGame(t, testConfig())
	r := NewReporter(g, nil)

	snap := Snapshot{Phase: PhaseFinished, RaceID: "race", WinnerID: 0}
	snap.Cars = append(snap.Cars, g.Snapshot().Cars...)
	snap.Cars[0].Finished = true

	if r.Observe(snap, false) {
		t.Error("wrote while autonomous cars were still racing")
	}
	if !r.Observe(snap, true) {
		t.Error("forced write refused")
	}
}
