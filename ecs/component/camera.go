package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// Camera is the top-down view singleton. Center is the world point shown in
// the middle of a ViewW x ViewH screen.
type Camera struct {
	Center     common.Vec3
	Zoom       float64
	Smoothness float64
	// LookAhead shifts the view along the target's facing.
	LookAhead float64

	ViewW float64
	ViewH float64
}

// ToScreen projects a world point onto the screen.
func (c *Camera) ToScreen(p common.Vec3) (float64, float64) {
	if c == nil {
		return p.X, p.Y
	}
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (p.X-c.Center.X)*zoom + c.ViewW/2, (p.Y-c.Center.Y)*zoom + c.ViewH/2
}

// Scale converts a world length to screen pixels.
func (c *Camera) Scale(v float64) float64 {
	if c == nil || c.Zoom <= 0 {
		return v
	}
	return v * c.Zoom
}

var CameraComponent = NewComponent[Camera]()
