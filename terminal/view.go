// Package terminal is the tcell front-end: the track drawn in character cells.
package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/raceway/camera"
	"github.com/pthm-cable/raceway/components"
	"github.com/pthm-cable/raceway/config"
	"github.com/pthm-cable/raceway/game"
	"github.com/pthm-cable/raceway/systems"
	"github.com/pthm-cable/raceway/telemetry"
)

const (
	trackTop   = 3 // Rows above the track: title, status, blank
	laneRows   = 2 // Each lane is one row plus a divider
	sideMargin = 2
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFinish   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBoost    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleShield   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleWinner   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
)

var carStyles = []tcell.Style{
	tcell.StyleDefault.Foreground(tcell.ColorYellow),
	tcell.StyleDefault.Foreground(tcell.ColorAqua),
	tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	tcell.StyleDefault.Foreground(tcell.ColorLime),
	tcell.StyleDefault.Foreground(tcell.ColorOrange),
	tcell.StyleDefault.Foreground(tcell.ColorPurple),
}

// View draws snapshots onto a tcell screen, scaled to its width.
type View struct {
	screen tcell.Screen
	cfg    *config.Config
	cam    *camera.Camera
	width  int
	height int
}

// NewView creates a view over an initialized screen.
func NewView(screen tcell.Screen, cfg *config.Config) *View {
	v := &View{screen: screen, cfg: cfg}
	v.Resize()
	return v
}

// Resize refits the track to the current screen size.
func (v *View) Resize() {
	v.width, v.height = v.screen.Size()
	lanes := v.cfg.Track.Lanes
	trackW := max(v.width-2*sideMargin, 1)
	v.cam = camera.New(sideMargin, trackTop, float32(trackW), float32(lanes*laneRows),
		float32(v.cfg.Track.StartX), float32(v.cfg.Track.FinishX+v.cfg.Cars.Length), lanes)
}

// Draw renders one frame.
func (v *View) Draw(snap game.Snapshot, standings []telemetry.RaceResult) {
	v.screen.Clear()

	v.drawText(0, 0, "RACEWAY", styleFinish)
	v.drawText(0, 1, v.status(snap), styleText)

	v.drawTrack()
	v.drawItems(snap.Obstacles, snap.Pickups)
	v.drawCars(snap.Cars, snap.WinnerID)

	y := trackTop + v.cfg.Track.Lanes*laneRows + 1
	y = v.drawStandings(y, standings)
	y = v.drawEvents(y+1, snap.Events)
	v.drawText(0, v.height-1, "[space] start  [p] pause  [s] stop  [r] reset  [→] drive  [↑/↓] lane  [q] quit", styleDim)

	v.screen.Show()
}

func (v *View) status(snap game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-11s  t=%6.2fs", strings.ToUpper(snap.Phase.String()), snap.Elapsed.Seconds())
	if w, ok := snap.Winner(); ok {
		fmt.Fprintf(&b, "  winner: %s", carName(w))
	}
	return b.String()
}

func (v *View) drawTrack() {
	left := int(v.cam.Left)
	right := left + int(v.cam.ViewportW)
	for lane := 0; lane < v.cfg.Track.Lanes; lane++ {
		_, sy := v.cam.TrackToScreen(0, lane)
		divider := int(sy) + 1
		for x := left; x < right; x++ {
			v.screen.SetContent(x, divider, '-', nil, styleDim)
		}
	}

	fx, _ := v.cam.TrackToScreen(float32(v.cfg.Track.FinishX), 0)
	for y := trackTop; y < trackTop+v.cfg.Track.Lanes*laneRows; y++ {
		v.screen.SetContent(int(fx), y, '|', nil, styleFinish)
	}
}

func (v *View) drawItems(obstacles, pickups []systems.ItemState) {
	for _, o := range obstacles {
		if o.Active {
			v.fill(o.X, o.Size, o.Lane, '#', styleObstacle)
		}
	}
	for _, p := range pickups {
		if !p.Active {
			continue
		}
		switch p.Kind {
		case components.PickupSpeedBoost:
			v.fill(p.X, p.Size, p.Lane, '>', styleBoost)
		case components.PickupShield:
			v.fill(p.X, p.Size, p.Lane, 'o', styleShield)
		}
	}
}

func (v *View) drawCars(cars []components.Car, winnerID int) {
	for i := range cars {
		c := &cars[i]
		style := carStyles[c.ID%len(carStyles)]
		if c.ID == winnerID {
			style = styleWinner
		}
		v.fill(c.X, v.cfg.Cars.Length, c.Lane, '█', style)

		sx, sy := v.cam.TrackToScreen(float32(c.X), c.Lane)
		label := rune('1' + c.ID%9)
		if c.Interactive() {
			label = 'P'
		}
		v.screen.SetContent(int(sx), int(sy), label, nil, style.Reverse(true))
		if c.Effects.Shielded() {
			v.screen.SetContent(int(sx)-1, int(sy), '(', nil, styleShield)
		}
		if c.Effects.Boosted() {
			v.screen.SetContent(int(sx)-1, int(sy), '~', nil, styleBoost)
		}
	}
}

// fill paints the cells covered by [x, x+length) in lane, at least one cell.
func (v *View) fill(x, length float64, lane int, r rune, style tcell.Style) {
	sx, sy := v.cam.TrackToScreen(float32(x), lane)
	w := max(int(v.cam.Scale(float32(length))+0.5), 1)
	for i := 0; i < w; i++ {
		v.screen.SetContent(int(sx)+i, int(sy), r, nil, style)
	}
}

func (v *View) drawStandings(y int, standings []telemetry.RaceResult) int {
	for i, r := range standings {
		line := fmt.Sprintf("%d. car %d  x=%7.1f", i+1, r.CarID+1, r.FinalX)
		if !r.Autonomous {
			line = fmt.Sprintf("%d. you    x=%7.1f", i+1, r.FinalX)
		}
		if r.Finished {
			line += fmt.Sprintf("  finished %.2fs", r.FinishTime)
		}
		v.drawText(sideMargin, y, line, carStyles[r.CarID%len(carStyles)])
		y++
	}
	return y
}

func (v *View) drawEvents(y int, events []telemetry.Event) int {
	for _, ev := range events {
		if y >= v.height-1 {
			break
		}
		v.drawText(sideMargin, y, fmt.Sprintf("%6.2fs %s", ev.RaceTime.Seconds(), ev.Describe()), styleDim)
		y++
	}
	return y
}

func (v *View) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func carName(c components.Car) string {
	if c.Interactive() {
		return "you"
	}
	return fmt.Sprintf("car %d", c.ID+1)
}
