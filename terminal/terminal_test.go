package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/config"
	"github.com/pthm-cable/raceway/game"
	"github.com/pthm-cable/raceway/systems"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestViewDraw(t *testing.T) {
	cfg := config.Default()
	screen := newSimScreen(t, 100, 30)
	v := NewView(screen, cfg)

	snap := game.Snapshot{
		Phase:    game.PhaseRunning,
		WinnerID: -1,
		Lanes:    cfg.Track.Lanes,
		FinishX:  cfg.Track.FinishX,
		Cars: []components.Car{
			{ID: 0, Lane: 0, X: 300},
			{ID: 1, Lane: 2, X: 500, Autonomous: true},
		},
		Obstacles: []systems.ItemState{{X: 700, Lane: 1, Size: cfg.Obstacles.Size, Active: true}},
	}
	v.Draw(snap, nil)

	sx, sy := v.cam.TrackToScreen(300, 0)
	if r := runeAt(screen, int(sx), int(sy)); r != 'P' {
		t.Errorf("player cell = %q, want 'P'", r)
	}
	sx, sy = v.cam.TrackToScreen(500, 2)
	if r := runeAt(screen, int(sx), int(sy)); r != '2' {
		t.Errorf("car 2 cell = %q, want '2'", r)
	}
	sx, sy = v.cam.TrackToScreen(700, 1)
	if r := runeAt(screen, int(sx), int(sy)); r != '#' {
		t.Errorf("obstacle cell = %q, want '#'", r)
	}
	fx, _ := v.cam.TrackToScreen(float32(cfg.Track.FinishX), 0)
	if r := runeAt(screen, int(fx), trackTop); r != '|' {
		t.Errorf("finish cell = %q, want '|'", r)
	}
}

func TestViewResize(t *testing.T) {
	cfg := config.Default()
	screen := newSimScreen(t, 60, 20)
	v := NewView(screen, cfg)
	narrow := v.cam.Zoom()

	screen.SetSize(120, 20)
	v.Resize()
	if v.cam.Zoom() <= narrow {
		t.Errorf("zoom %f after widening, was %f", v.cam.Zoom(), narrow)
	}
}

func TestSessionKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Obstacles.Count = 0
	cfg.Pickups.Count = 0
	g, err := game.NewGame(cfg, game.Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	s := newSession(g, nil, newSimScreen(t, 100, 30))
	key := func(r rune) bool {
		return s.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	if !key(' ') {
		t.Fatal("space quit the session")
	}
	if phase := g.Snapshot().Phase; phase != game.PhaseRunning {
		t.Fatalf("phase after space = %v, want running", phase)
	}
	key('p')
	if phase := g.Snapshot().Phase; phase != game.PhasePaused {
		t.Errorf("phase after p = %v, want paused", phase)
	}
	key('r')
	if phase := g.Snapshot().Phase; phase != game.PhaseNotStarted {
		t.Errorf("phase after r = %v, want not_started", phase)
	}
	if key('q') {
		t.Error("q did not quit")
	}
	if s.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape did not quit")
	}
}

func TestPollEventsStopsWhenNobodyReads(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	events := make(chan tcell.Event)
	stopCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		pollEvents(screen, events, stopCh)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	close(stopCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pollEvents blocked on a send after stop")
	}
}
