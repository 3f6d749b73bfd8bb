package flashlight

import "github.com/go-gl/mathgl/mgl32"

// Radius limits and defaults, in window pixels.
const (
	MinRadius     = 30.0
	MaxRadius     = 1000.0
	DefaultRadius = 130.0
)

const (
	// LightDecay is the per-frame radius velocity multiplier.
	LightDecay = 0.9

	// radiusPerLine scales CameraAcceleration for Ctrl+scroll.
	radiusPerLine = 200.0
)

// Light is the flashlight circle drawn around the cursor.
type Light struct {
	Enabled  bool
	Radius   float32
	Velocity float32
}

// NewLight returns a disabled light with the given radius, clamped.
func NewLight(radius float32) Light {
	return Light{Radius: mgl32.Clamp(radius, MinRadius, MaxRadius)}
}

// Toggle flips Enabled. The radius is left alone.
func (l *Light) Toggle() {
	l.Enabled = !l.Enabled
}

// Step integrates the radius velocity over the given number of reference
// frames and clamps the radius to [MinRadius, MaxRadius].
func (l *Light) Step(frames float32) {
	l.Velocity *= decayFactor(LightDecay, frames)
	l.Radius += l.Velocity * frames
	l.Radius = mgl32.Clamp(l.Radius, MinRadius, MaxRadius)
}
