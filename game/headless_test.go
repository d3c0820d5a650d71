package game

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/raceway/telemetry"
)

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n
}

func TestRunHeadlessWritesResults(t *testing.T) {
	cfg := testConfig()
	cfg.Cars.Interactive = true
	cfg.ComputeDerived()
	g := newTestGame(t, cfg)

	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	const races = 2
	if err := g.RunHeadless(ctx, races, out, true); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if n := countLines(t, filepath.Join(dir, "results.csv")); n != 1+races*cfg.Cars.Count {
		t.Errorf("results.csv has %d lines, want %d", n, 1+races*cfg.Cars.Count)
	}
	if n := countLines(t, filepath.Join(dir, "races.csv")); n != 1+races {
		t.Errorf("races.csv has %d lines, want %d", n, 1+races)
	}

	snaps, err := filepath.Glob(filepath.Join(dir, "snapshots", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != races {
		t.Fatalf("%d snapshots, want %d", len(snaps), races)
	}
	snap, err := telemetry.LoadSnapshot(snaps[0])
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.WinnerID == nil || snap.Phase != "finished" {
		t.Errorf("snapshot winner %v phase %q, want a finished race", snap.WinnerID, snap.Phase)
	}

	// Headless leaves a fresh world behind
	if s := g.Snapshot(); s.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, want not_started", s.Phase)
	}
}

func TestRunRaceCancelled(t *testing.T) {
	cfg := testConfig()
	cfg.Track.FinishX = 100000
	cfg.ComputeDerived()
	g := newTestGame(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	report, err := g.RunRace(ctx, false)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunRace = %v, want DeadlineExceeded", err)
	}
	if len(report.Results) != cfg.Cars.Count {
		t.Errorf("partial report has %d results", len(report.Results))
	}
	if report.Summary.WinnerID != -1 {
		t.Errorf("WinnerID = %d, want -1", report.Summary.WinnerID)
	}
	if s := g.Snapshot(); s.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, want not_started after cancel", s.Phase)
	}
}

func TestRunRaceNotStartable(t *testing.T) {
	g := newTestGame(t, testConfig())
	if !g.StartRace() {
		t.Fatal("StartRace failed")
	}
	if _, err := g.RunRace(context.Background(), false); !errors.Is(err, ErrNotStarted) {
		t.Errorf("RunRace = %v, want ErrNotStarted", err)
	}
}

func TestRunRaceAutopilotFinishesAfterWorkerWins(t *testing.T) {
	cfg := testConfig()
	cfg.Cars.Interactive = true
	cfg.Track.FinishX = 40
	cfg.Movement.PlayerFactor = 0.05
	cfg.ComputeDerived()
	g := newTestGame(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	report, err := g.RunRace(ctx, true)
	if err != nil {
		t.Fatalf("RunRace: %v", err)
	}

	var player telemetry.RaceResult
	for _, r := range report.Results {
		if !r.Autonomous {
			player = r
		}
		if !r.Finished {
			t.Errorf("car %d did not finish", r.CarID)
		}
	}
	if player.Winner {
		t.Error("slow player won, want a worker to win first")
	}
	if player.FinishOrder != cfg.Cars.Count {
		t.Errorf("player finish order %d, want %d", player.FinishOrder, cfg.Cars.Count)
	}
}
