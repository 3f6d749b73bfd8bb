package flashlight

import "github.com/go-gl/mathgl/mgl32"

// Zoom limits.
const (
	MinZoom = 0.01
	MaxZoom = 100.0
)

// Camera momentum constants, per reference frame.
const (
	// CameraDecay is the per-frame velocity multiplier.
	CameraDecay = 0.95

	// CameraAcceleration is added to the zoom velocity per scroll line.
	CameraAcceleration = 0.01
)

// Camera is the pan and zoom of the view onto the captured image.
//
// Zoom is kept in [MinZoom, MaxZoom] after every mutation. Target is the
// accumulated pan in window pixels and is unbounded.
type Camera struct {
	Target   mgl32.Vec2
	Zoom     float32
	Velocity float32
}

// NewCamera returns a camera at zoom 1 with no pan.
func NewCamera() Camera {
	return Camera{Zoom: 1}
}

// Reset zeroes pan and velocity and restores zoom 1.
func (c *Camera) Reset() {
	c.Velocity = 0
	c.Target = mgl32.Vec2{}
	c.Zoom = 1
}

// Step integrates the zoom velocity over the given number of reference
// frames. In per-frame damping frames is always 1:
//
//	Velocity *= 0.95
//	Zoom += Velocity
func (c *Camera) Step(frames float32) {
	c.Velocity *= decayFactor(CameraDecay, frames)
	c.Zoom += c.Velocity * frames
	c.clamp()
}

func (c *Camera) clamp() {
	c.Zoom = mgl32.Clamp(c.Zoom, MinZoom, MaxZoom)
}

// Bounds returns the orthographic extents for a window of sw by sh pixels.
// Zooming keeps the window center fixed; the pan is divided by the zoom so
// a drag moves the image by the same number of screen pixels at any zoom.
func (c *Camera) Bounds(sw, sh float32) (left, right, bottom, top float32) {
	cx, cy := sw/2, sh/2
	left = cx - cx/c.Zoom - c.Target.X()/c.Zoom
	right = cx + cx/c.Zoom - c.Target.X()/c.Zoom
	bottom = cy - cy/c.Zoom + c.Target.Y()/c.Zoom
	top = cy + cy/c.Zoom + c.Target.Y()/c.Zoom
	return left, right, bottom, top
}

// Projection returns the orthographic projection for a window of sw by sh
// pixels with near -1 and far 1.
func (c *Camera) Projection(sw, sh float32) mgl32.Mat4 {
	l, r, b, t := c.Bounds(sw, sh)
	return mgl32.Ortho(l, r, b, t, -1, 1)
}
