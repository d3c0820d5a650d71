package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raceway/camera"
	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/systems"
)

// ItemRenderer draws obstacles and pickups.
type ItemRenderer struct{}

// NewItemRenderer creates a new item renderer.
func NewItemRenderer() *ItemRenderer {
	return &ItemRenderer{}
}

// DrawObstacles renders obstacles. Spent ones are drawn faded.
func (r *ItemRenderer) DrawObstacles(cam *camera.Camera, obstacles []systems.ItemState) {
	laneH := cam.LaneHeight()
	for _, o := range obstacles {
		if !cam.IsVisible(float32(o.X), float32(o.Size)) {
			continue
		}
		x, y := cam.TrackToScreen(float32(o.X), o.Lane)
		rect := rl.Rectangle{X: x, Y: y + laneH*0.2, Width: cam.Scale(float32(o.Size)), Height: laneH * 0.6}

		color := obstacleFill
		if !o.Active {
			color = spentFill
		}
		rl.DrawRectangleRec(rect, color)
		if o.Active {
			rl.DrawRectangleLinesEx(rect, 1, rl.Black)
		}
	}
}

// DrawPickups renders active pickups as circles colored by kind.
func (r *ItemRenderer) DrawPickups(cam *camera.Camera, pickups []systems.ItemState) {
	laneH := cam.LaneHeight()
	for _, p := range pickups {
		if !p.Active || !cam.IsVisible(float32(p.X), float32(p.Size)) {
			continue
		}
		x, y := cam.TrackToScreen(float32(p.X), p.Lane)
		w := cam.Scale(float32(p.Size))

		var color rl.Color
		switch p.Kind {
		case components.PickupSpeedBoost:
			color = boostFill
		case components.PickupShield:
			color = shieldFill
		}

		radius := min(w, laneH*0.6) / 2
		rl.DrawCircle(int32(x+w/2), int32(y+laneH/2), radius, color)
	}
}
