// Package renderer draws race state with raylib.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

var (
	trackBg      = rl.Color{R: 34, G: 38, B: 44, A: 255}
	laneDivider  = rl.Color{R: 90, G: 96, B: 104, A: 255}
	startLine    = rl.Color{R: 120, G: 200, B: 120, A: 255}
	finishLine   = rl.Color{R: 240, G: 240, B: 240, A: 255}
	obstacleFill = rl.Color{R: 200, G: 70, B: 60, A: 255}
	spentFill    = rl.Color{R: 80, G: 60, B: 60, A: 120}
	boostFill    = rl.Color{R: 255, G: 170, B: 40, A: 255}
	shieldFill   = rl.Color{R: 80, G: 170, B: 255, A: 255}
)

// carColors is cycled by car ID.
var carColors = []rl.Color{
	{R: 230, G: 230, B: 90, A: 255},
	{R: 120, G: 200, B: 240, A: 255},
	{R: 230, G: 120, B: 200, A: 255},
	{R: 140, G: 230, B: 140, A: 255},
	{R: 240, G: 150, B: 90, A: 255},
	{R: 170, G: 140, B: 240, A: 255},
}

// CarColor returns the display color for a car.
func CarColor(id int) rl.Color {
	return carColors[id%len(carColors)]
}
