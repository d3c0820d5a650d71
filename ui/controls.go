package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raceway/game"
)

// Action is a lifecycle command requested from the controls.
type Action uint8

const (
	ActionNone Action = iota
	ActionStart
	ActionTogglePause
	ActionStop
	ActionReset
)

// ControlsPanel renders the lifecycle buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the buttons and returns the one clicked, if any. Buttons that
// would be no-ops in the current phase are drawn disabled.
func (c *ControlsPanel) Draw(phase game.Phase) Action {
	r := c.renderer
	padding := r.Theme.Padding
	buttonH := float32(24)

	height := int32(buttonH)*4 + padding*6 + r.Theme.LineHeight
	r.DrawPanel(c.x, c.y, c.width, height)
	y := float32(r.DrawSectionHeader(c.x+padding, c.y+padding, "Race") + 4)

	bounds := func() rl.Rectangle {
		rect := rl.Rectangle{X: float32(c.x + padding), Y: y, Width: float32(c.width - padding*2), Height: buttonH}
		y += buttonH + float32(padding)
		return rect
	}

	action := ActionNone
	if button(bounds(), "Start [Space]", phase == game.PhaseNotStarted) {
		action = ActionStart
	}
	pauseLabel := "Pause [P]"
	if phase == game.PhasePaused {
		pauseLabel = "Resume [P]"
	}
	if button(bounds(), pauseLabel, phase == game.PhaseRunning || phase == game.PhasePaused) {
		action = ActionTogglePause
	}
	if button(bounds(), "Stop [S]", phase == game.PhaseRunning || phase == game.PhasePaused) {
		action = ActionStop
	}
	if button(bounds(), "Reset [R]", true) {
		action = ActionReset
	}
	return action
}

func button(bounds rl.Rectangle, text string, enabled bool) bool {
	if !enabled {
		gui.Disable()
		defer gui.Enable()
	}
	return gui.Button(bounds, text)
}
