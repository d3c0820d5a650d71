package game

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/config"
)

// soloConfig has a single interactive car and no workers.
func soloConfig() *config.Config {
	cfg := testConfig()
	cfg.Track.Lanes = 2
	cfg.Cars.Count = 1
	cfg.Cars.Interactive = true
	cfg.ComputeDerived()
	return cfg
}

func TestPlayerInputIgnoredUnlessRunning(t *testing.T) {
	g := newTestGame(t, soloConfig())

	if g.ApplyPlayerInput(DirAdvance) {
		t.Error("advance accepted before start")
	}
	if g.ApplyPlayerInput(DirLaneDown) {
		t.Error("lane change accepted before start")
	}

	if !g.StartRace() {
		t.Fatal("StartRace failed")
	}
	g.TogglePause()
	if g.ApplyPlayerInput(DirAdvance) {
		t.Error("advance accepted while paused")
	}
	if x := g.Snapshot().Cars[0].X; x != g.cfg.Track.StartX {
		t.Errorf("X = %v after paused input, want %v", x, g.cfg.Track.StartX)
	}
}

func TestPlayerAdvance(t *testing.T) {
	g := newTestGame(t, soloConfig())
	if !g.StartRace() {
		t.Fatal("StartRace failed")
	}

	car := g.Snapshot().Cars[0]
	if !g.ApplyPlayerInput(DirAdvance) {
		t.Fatal("advance rejected")
	}

	want := car.X + car.BaseSpeed*g.cfg.Movement.PlayerFactor
	if x := g.Snapshot().Cars[0].X; math.Abs(x-want) > 1e-9 {
		t.Errorf("X = %v, want %v", x, want)
	}
}

func TestPlayerAdvanceToFinishWins(t *testing.T) {
	g := newTestGame(t, soloConfig())
	if !g.StartRace() {
		t.Fatal("StartRace failed")
	}

	for i := 0; i < 1000 && g.Snapshot().Phase == PhaseRunning; i++ {
		g.ApplyPlayerInput(DirAdvance)
	}

	snap := g.Snapshot()
	if snap.Phase != PhaseFinished || snap.WinnerID != 0 {
		t.Fatalf("phase %v winner %d, want finished with car 0", snap.Phase, snap.WinnerID)
	}
	if g.ApplyPlayerInput(DirAdvance) {
		t.Error("advance accepted after finish")
	}
}

func TestPlayerLaneChange(t *testing.T) {
	g := newTestGame(t, soloConfig())
	if !g.StartRace() {
		t.Fatal("StartRace failed")
	}

	if g.ApplyPlayerInput(DirLaneUp) {
		t.Error("lane change above lane 0 accepted")
	}
	if !g.ApplyPlayerInput(DirLaneDown) {
		t.Fatal("lane change to lane 1 rejected")
	}
	if lane := g.Snapshot().Cars[0].Lane; lane != 1 {
		t.Errorf("Lane = %d, want 1", lane)
	}
	if g.ApplyPlayerInput(DirLaneUp) {
		t.Error("lane change inside cooldown accepted")
	}

	time.Sleep(g.cfg.Derived.LaneChangeCooldown + 10*time.Millisecond)
	if !g.ApplyPlayerInput(DirLaneUp) {
		t.Error("lane change after cooldown rejected")
	}
	if g.ApplyPlayerInput(DirLaneDown) {
		t.Error("cooldown not applied after second change")
	}
}

func TestPlayerLaneChangeBlockedByCar(t *testing.T) {
	cfg := testConfig()
	cfg.Track.Lanes = 2
	cfg.Cars.Count = 2
	cfg.Cars.Interactive = true
	cfg.ComputeDerived()
	g := newTestGame(t, cfg)

	// No workers: car 1 stays level with the player in lane 1
	arm(g)

	if g.ApplyPlayerInput(DirLaneDown) {
		t.Error("lane change into an occupied interval accepted")
	}

	g.world.mu.Lock()
	g.world.cars[1].X = 100
	g.world.mu.Unlock()

	if !g.ApplyPlayerInput(DirLaneDown) {
		t.Error("lane change into a free interval rejected")
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirAdvance, "advance"},
		{DirLaneUp, "lane_up"},
		{DirLaneDown, "lane_down"},
		{Direction(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.dir.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestPlayerFinishesAfterWorkerWins(t *testing.T) {
	cfg := testConfig()
	cfg.Cars.Interactive = true
	g := newTestGame(t, cfg)
	arm(g)

	w := g.world
	w.mu.Lock()
	worker := w.cars[1]
	worker.X = 199
	w.mu.Unlock()
	if got := g.commitStep(worker, components.StatusEffects{}, 2); got != stepFinished {
		t.Fatalf("worker commit = %v, want finished", got)
	}

	for i := 0; i < 1000 && !g.Snapshot().Cars[0].Finished; i++ {
		if !g.ApplyPlayerInput(DirAdvance) {
			t.Fatalf("advance %d rejected after another car won", i)
		}
	}

	snap := g.Snapshot()
	player := snap.Cars[0]
	if !player.Finished || player.FinishOrder != 2 {
		t.Errorf("player finished %v order %d, want true 2", player.Finished, player.FinishOrder)
	}
	if snap.WinnerID != worker.ID {
		t.Errorf("WinnerID = %d, want %d", snap.WinnerID, worker.ID)
	}
}
