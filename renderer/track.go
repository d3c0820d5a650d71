package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/raceway/camera"
)

// TrackRenderer draws the lanes and the start and finish lines.
type TrackRenderer struct {
	startX, finishX float32
}

// NewTrackRenderer creates a track renderer.
func NewTrackRenderer(startX, finishX float64) *TrackRenderer {
	return &TrackRenderer{startX: float32(startX), finishX: float32(finishX)}
}

// Draw renders the lane bands.
func (t *TrackRenderer) Draw(cam *camera.Camera) {
	rl.DrawRectangle(int32(cam.Left), int32(cam.Top), int32(cam.ViewportW), int32(cam.ViewportH), trackBg)

	for lane := 1; lane < cam.Lanes; lane++ {
		_, y := cam.TrackToScreen(cam.MinX, lane)
		// Dashed divider
		for x := cam.Left; x < cam.Left+cam.ViewportW; x += 24 {
			rl.DrawLine(int32(x), int32(y), int32(x+12), int32(y), laneDivider)
		}
	}

	top := int32(cam.Top)
	bottom := int32(cam.Top + cam.ViewportH)
	sx, _ := cam.TrackToScreen(t.startX, 0)
	rl.DrawLine(int32(sx), top, int32(sx), bottom, startLine)

	fx, _ := cam.TrackToScreen(t.finishX, 0)
	// Checkered finish
	cell := int32(6)
	for y := top; y < bottom; y += cell {
		if (y/cell)%2 == 0 {
			rl.DrawRectangle(int32(fx), y, cell, cell, finishLine)
		} else {
			rl.DrawRectangle(int32(fx)+cell, y, cell, cell, finishLine)
		}
	}
}
