package ui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raceway/camera"
	"github.com/pthm-cable/raceway/game"
	"github.com/pthm-cable/raceway/renderer"
	"github.com/pthm-cable/raceway/telemetry"
)

const (
	sidebarWidth = 240
	hudHeight    = 90
	footerHeight = 40
)

const controlsLegend = "[Space] Start  [P] Pause  [S] Stop  [R] Reset  [Right] Drive  [Up/Down] Lane  [L/E/C/B] Panels"

// App is the window front-end state.
type App struct {
	g        *game.Game
	reporter *game.Reporter

	cam   *camera.Camera
	track *renderer.TrackRenderer
	items *renderer.ItemRenderer
	cars  *renderer.CarRenderer

	hud       *HUD
	standings *StandingsPanel
	events    *EventsPanel
	controls  *ControlsPanel
	overlays  *OverlayRegistry

}

// Run opens a window and drives g until the window is closed.
// Finished races are written to out, which may be nil.
func Run(g *game.Game, out *telemetry.OutputManager) error {
	cfg := g.Config()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Raceway")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a := newApp(g, out)
	for !rl.WindowShouldClose() {
		a.update()
		a.draw()

		if err := g.Err(); err != nil {
			return err
		}
	}
	return g.Close()
}

func newApp(g *game.Game, out *telemetry.OutputManager) *App {
	cfg := g.Config()
	w := float32(cfg.Screen.Width - sidebarWidth - 20)
	h := float32(cfg.Screen.Height - hudHeight - footerHeight)

	// Show a little space behind the start and past the finish
	pad := float32(cfg.Cars.Length)
	cam := camera.New(10, hudHeight, w, h,
		float32(cfg.Track.StartX)-pad, float32(cfg.Track.FinishX)+pad, cfg.Track.Lanes)

	sideX := int32(cfg.Screen.Width - sidebarWidth)
	return &App{
		g:         g,
		reporter:  game.NewReporter(g, out),
		cam:       cam,
		track:     renderer.NewTrackRenderer(cfg.Track.StartX, cfg.Track.FinishX),
		items:     renderer.NewItemRenderer(),
		cars:      renderer.NewCarRenderer(cfg.Cars.Length),
		hud:       NewHUD(),
		standings: NewStandingsPanel(sideX, 10, sidebarWidth-10),
		events:    NewEventsPanel(10, int32(cfg.Screen.Height)-footerHeight-200, int32(w)),
		controls:  NewControlsPanel(sideX, 0, sidebarWidth-10),
		overlays:  NewOverlayRegistry(),
	}
}

// update turns this frame's input into game commands.
func (a *App) update() {
	a.overlays.HandleKeys()

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.apply(ActionStart)
	case rl.IsKeyPressed(rl.KeyP):
		a.apply(ActionTogglePause)
	case rl.IsKeyPressed(rl.KeyS):
		a.apply(ActionStop)
	case rl.IsKeyPressed(rl.KeyR):
		a.apply(ActionReset)
	}

	if rl.IsKeyDown(rl.KeyRight) {
		a.g.ApplyPlayerInput(game.DirAdvance)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		a.g.ApplyPlayerInput(game.DirLaneUp)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		a.g.ApplyPlayerInput(game.DirLaneDown)
	}
}

func (a *App) apply(action Action) {
	switch action {
	case ActionStart:
		a.g.StartRace()
	case ActionTogglePause:
		a.g.TogglePause()
	case ActionStop:
		if err := a.g.StopRace(); err != nil {
			slog.Error("stop failed", "error", err)
		}
	case ActionReset:
		a.reporter.Observe(a.g.Snapshot(), true)
		if err := a.g.ResetRace(); err != nil {
			slog.Error("reset failed", "error", err)
		}
	}
}

func (a *App) draw() {
	snap := a.g.Snapshot()
	cfg := a.g.Config()
	a.reporter.Observe(snap, false)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 24, A: 255})

	a.track.Draw(a.cam)
	a.items.DrawObstacles(a.cam, snap.Obstacles)
	a.items.DrawPickups(a.cam, snap.Pickups)
	a.cars.Draw(a.cam, snap.Cars, snap.WinnerID)
	if a.overlays.IsEnabled(OverlayHitboxes) {
		a.drawHitboxes(snap)
	}

	winner := ""
	if w, ok := snap.Winner(); ok {
		winner = fmt.Sprintf("CAR %d", w.ID+1)
		if w.Interactive() {
			winner = "YOU"
		}
	}
	a.hud.Draw(HUDData{
		Title:   "Raceway",
		Phase:   snap.Phase,
		RaceID:  snap.RaceID,
		Elapsed: snap.Elapsed,
		FPS:     rl.GetFPS(),
		Winner:  winner,
	})

	y := int32(10)
	if a.overlays.IsEnabled(OverlayStandings) {
		y = a.standings.Draw(a.g.Standings(), cfg.Track.StartX, cfg.Track.FinishX) + 10
	}
	if a.overlays.IsEnabled(OverlayControls) {
		a.controls.y = y
		if action := a.controls.Draw(snap.Phase); action != ActionNone {
			a.apply(action)
		}
	}
	if a.overlays.IsEnabled(OverlayEvents) && len(snap.Events) > 0 {
		a.events.Draw(snap.Events)
	}

	a.hud.DrawControls(int32(cfg.Screen.Height), controlsLegend)
	rl.EndDrawing()
}

// drawHitboxes outlines the collision interval of every car.
func (a *App) drawHitboxes(snap game.Snapshot) {
	length := float32(a.g.Config().Cars.Length)
	laneH := a.cam.LaneHeight()
	for _, c := range snap.Cars {
		x, y := a.cam.TrackToScreen(float32(c.X), c.Lane)
		rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: a.cam.Scale(length), Height: laneH}, 1, rl.Magenta)
	}
}
