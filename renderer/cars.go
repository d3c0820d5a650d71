package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raceway/camera"
	"github.com/pthm-cable/raceway/components"
)

// CarRenderer draws cars with their active effects.
type CarRenderer struct {
	length float32
}

// NewCarRenderer creates a car renderer for cars of the given length.
func NewCarRenderer(length float64) *CarRenderer {
	return &CarRenderer{length: float32(length)}
}

// Draw renders every car. The winner gets an outline.
func (r *CarRenderer) Draw(cam *camera.Camera, cars []components.Car, winnerID int) {
	laneH := cam.LaneHeight()
	for i := range cars {
		c := &cars[i]
		x, y := cam.TrackToScreen(float32(c.X), c.Lane)
		rect := rl.Rectangle{X: x, Y: y + laneH*0.15, Width: cam.Scale(r.length), Height: laneH * 0.7}

		color := CarColor(c.ID)
		if c.Finished && c.ID != winnerID {
			color = rl.Fade(color, 0.6)
		}
		rl.DrawRectangleRounded(rect, 0.3, 4, color)

		if c.Effects.Shielded() {
			rl.DrawRectangleLinesEx(rl.Rectangle{X: rect.X - 3, Y: rect.Y - 3, Width: rect.Width + 6, Height: rect.Height + 6}, 2, shieldFill)
		}
		if c.Effects.Boosted() {
			// Exhaust flame
			rl.DrawTriangle(
				rl.Vector2{X: rect.X, Y: rect.Y + rect.Height*0.25},
				rl.Vector2{X: rect.X - rect.Height*0.6, Y: rect.Y + rect.Height*0.5},
				rl.Vector2{X: rect.X, Y: rect.Y + rect.Height*0.75},
				boostFill,
			)
		}
		if c.ID == winnerID {
			rl.DrawRectangleLinesEx(rect, 2, finishLine)
		}

		label := fmt.Sprintf("%d", c.ID+1)
		if c.Interactive() {
			label = "P"
		}
		rl.DrawText(label, int32(rect.X+4), int32(rect.Y+rect.Height/2-6), 12, rl.Black)
	}
}
