package terminal

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/raceway/game"
	"github.com/pthm-cable/raceway/telemetry"
)

// Run takes over the terminal and drives g until the user quits or ctx is done.
// Finished races are written to out, which may be nil.
func Run(ctx context.Context, g *game.Game, out *telemetry.OutputManager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return newSession(g, out, screen).run(ctx)
}

// session is one terminal run.
type session struct {
	g      *game.Game
	screen tcell.Screen
	view   *View

	reporter *game.Reporter
}

func newSession(g *game.Game, out *telemetry.OutputManager, screen tcell.Screen) *session {
	return &session{
		g:      g,
		screen: screen,
		view:   NewView(screen, g.Config()),

		reporter: game.NewReporter(g, out),
	}
}

func (s *session) run(ctx context.Context) error {
	ticker := time.NewTicker(s.g.Config().Derived.FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	stopCh := make(chan struct{})
	defer close(stopCh)
	go pollEvents(s.screen, eventChan, stopCh)

	for {
		select {
		case <-ctx.Done():
			return s.g.Close()

		case ev := <-eventChan:
			if !s.handleEvent(ev) {
				return s.g.Close()
			}

		case <-ticker.C:
			if err := s.g.Err(); err != nil {
				return err
			}
			snap := s.g.Snapshot()
			s.reporter.Observe(snap, false)
			s.view.Draw(snap, s.g.Standings())
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or stopCh
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, stopCh <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		// PollEvent returns nil once the screen is finalized
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stopCh:
			return
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (s *session) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRight:
			s.g.ApplyPlayerInput(game.DirAdvance)
		case tcell.KeyUp:
			s.g.ApplyPlayerInput(game.DirLaneUp)
		case tcell.KeyDown:
			s.g.ApplyPlayerInput(game.DirLaneDown)
		case tcell.KeyRune:
			return s.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		s.screen.Sync()
		s.view.Resize()
	}
	return true
}

func (s *session) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		s.g.StartRace()
	case 'p':
		s.g.TogglePause()
	case 's':
		if err := s.g.StopRace(); err != nil {
			slog.Error("stop failed", "error", err)
		}
	case 'r':
		s.reporter.Observe(s.g.Snapshot(), true)
		if err := s.g.ResetRace(); err != nil {
			slog.Error("reset failed", "error", err)
		}
	case 'd':
		s.g.ApplyPlayerInput(game.DirAdvance)
	}
	return true
}
