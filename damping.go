package flashlight

import (
	"math"
	"time"
)

// DampingMode selects how velocities decay between frames.
type DampingMode int

const (
	// DampingPerFrame applies the decay factor once per rendered frame.
	// Inertia therefore depends on the display refresh rate.
	DampingPerFrame DampingMode = iota

	// DampingPerSecond scales the decay by the elapsed wall time, measured
	// in frames of a 60 Hz display. At 60 Hz both modes match.
	DampingPerSecond
)

// String returns the mode name as used in configuration.
func (m DampingMode) String() string {
	switch m {
	case DampingPerFrame:
		return "frame"
	case DampingPerSecond:
		return "time"
	default:
		return "unknown"
	}
}

// ReferenceRate is the refresh rate the decay constants were tuned for.
const ReferenceRate = 60

// maxStepFrames bounds a single time-scaled step so a stalled loop
// (window drag, debugger) does not fling the camera.
const maxStepFrames = 15

// stepClock converts wall time into reference frames.
type stepClock struct {
	mode DampingMode
	now  func() time.Time
	last time.Time
}

// next returns the number of reference frames since the previous call.
// Frame mode always returns 1. The first call in time mode returns 1.
func (c *stepClock) next() float32 {
	if c.mode != DampingPerSecond {
		return 1
	}
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 1
	}
	dt := t.Sub(c.last)
	c.last = t
	frames := float32(dt.Seconds() * ReferenceRate)
	if frames < 0 {
		return 0
	}
	if frames > maxStepFrames {
		return maxStepFrames
	}
	return frames
}

// decayFactor raises base to the given number of reference frames.
func decayFactor(base, frames float32) float32 {
	if frames == 1 {
		return base
	}
	return float32(math.Pow(float64(base), float64(frames)))
}
