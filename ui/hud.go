package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raceway/game"
	"github.com/pthm-cable/raceway/renderer"
	"github.com/pthm-cable/raceway/telemetry"
)

// HUDData holds the data needed to render the top bar.
type HUDData struct {
	Title   string
	Phase   game.Phase
	RaceID  string
	Elapsed time.Duration
	FPS     int32
	Winner  string // empty until a winner is declared
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the top bar.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	race := data.RaceID
	if race == "" {
		race = "-"
	}
	rl.DrawText(
		fmt.Sprintf("Race: %s | Time: %.2fs | FPS: %d", race, data.Elapsed.Seconds(), data.FPS),
		10, 35, 16, rl.LightGray,
	)

	status, color := phaseLabel(data.Phase)
	rl.DrawText(status, 10, 55, 16, color)

	if data.Winner != "" {
		text := data.Winner + " WINS"
		w := rl.MeasureText(text, 28)
		rl.DrawText(text, (int32(rl.GetScreenWidth())-w)/2, 12, 28, rl.Gold)
	}
}

func phaseLabel(p game.Phase) (string, rl.Color) {
	switch p {
	case game.PhaseRunning:
		return "RUNNING", rl.Green
	case game.PhasePaused:
		return "PAUSED", rl.Yellow
	case game.PhaseFinished:
		return "FINISHED", rl.Gold
	}
	return "READY - press Space", rl.LightGray
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StandingsPanel lists cars by position with progress bars.
type StandingsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStandingsPanel creates a new standings panel.
func NewStandingsPanel(x, y, width int32) *StandingsPanel {
	return &StandingsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the panel and returns the Y below it.
func (p *StandingsPanel) Draw(results []telemetry.RaceResult, startX, finishX float64) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight + 2

	height := int32(len(results))*lineHeight + lineHeight + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawSectionHeader(p.x+padding, p.y+padding, "Standings")
	for i, res := range results {
		label := fmt.Sprintf("%d. car %d", i+1, res.CarID+1)
		if !res.Autonomous {
			label = fmt.Sprintf("%d. you", i+1)
		}
		progress := float32((res.FinalX - startX) / (finishX - startX))
		y = r.DrawBar(p.x+padding, y, label, progress, p.width-padding*2, renderer.CarColor(res.CarID))
	}
	return p.y + height
}

// EventsPanel shows the recent race events.
type EventsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewEventsPanel creates a new events panel.
func NewEventsPanel(x, y, width int32) *EventsPanel {
	return &EventsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *EventsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the events, newest last.
func (p *EventsPanel) Draw(events []telemetry.Event) {
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	height := int32(max(len(events), 1))*lineHeight + lineHeight + padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawSectionHeader(p.x+padding, p.y+padding, "Events")
	for _, ev := range events {
		rl.DrawText(
			fmt.Sprintf("%6.2fs %s", ev.RaceTime.Seconds(), ev.Describe()),
			p.x+padding, y, r.Theme.FontSize, r.Theme.ValueColor,
		)
		y += lineHeight
	}
}
