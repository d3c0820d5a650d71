// Package camera maps track coordinates onto a screen rectangle.
package camera

// Camera controls the viewport onto the track.
// The track runs left to right; lanes stack top to bottom with lane 0 on top.
type Camera struct {
	// Screen rectangle the track is drawn into
	Left, Top            float32
	ViewportW, ViewportH float32

	// Track span shown, in track units
	MinX, MaxX float32

	Lanes int
}

// New creates a camera showing [minX, maxX] of a track with the given lanes
// inside the screen rectangle.
func New(left, top, viewportW, viewportH, minX, maxX float32, lanes int) *Camera {
	if lanes < 1 {
		lanes = 1
	}
	if maxX <= minX {
		maxX = minX + 1
	}
	return &Camera{
		Left:      left,
		Top:       top,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinX:      minX,
		MaxX:      maxX,
		Lanes:     lanes,
	}
}

// Zoom returns screen units per track unit along X.
func (c *Camera) Zoom() float32 {
	return c.ViewportW / (c.MaxX - c.MinX)
}

// LaneHeight returns the screen height of one lane band.
func (c *Camera) LaneHeight() float32 {
	return c.ViewportH / float32(c.Lanes)
}

// TrackToScreen converts a track position to the screen position of the
// top-left corner of that point's lane band.
func (c *Camera) TrackToScreen(x float32, lane int) (sx, sy float32) {
	sx = c.Left + (x-c.MinX)*c.Zoom()
	sy = c.Top + float32(lane)*c.LaneHeight()
	return sx, sy
}

// ScreenToTrack converts a screen position to a track position and lane.
// Points above or below the track clamp to the nearest lane.
func (c *Camera) ScreenToTrack(sx, sy float32) (x float32, lane int) {
	x = c.MinX + (sx-c.Left)/c.Zoom()
	lane = int((sy - c.Top) / c.LaneHeight())
	if sy < c.Top {
		lane = 0
	}
	if lane >= c.Lanes {
		lane = c.Lanes - 1
	}
	return x, lane
}

// Scale converts a track length to screen units.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom()
}

// IsVisible reports whether the interval [x, x+length) intersects the shown span.
func (c *Camera) IsVisible(x, length float32) bool {
	return x < c.MaxX && c.MinX < x+length
}

// Resize updates the screen rectangle, keeping the shown span.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}
