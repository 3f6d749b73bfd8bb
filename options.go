package flashlight

import "time"

// Option configures a State during creation.
//
// Example:
//
//	// Original behavior: frame-coupled damping, any-transition keys.
//	s := flashlight.NewState()
//
//	// Refresh-rate independent damping with a larger light.
//	s := flashlight.NewState(
//		flashlight.WithRadius(200),
//		flashlight.WithDamping(flashlight.DampingPerSecond),
//	)
type Option func(*options)

type options struct {
	radius  float32
	damping DampingMode
	keyMode KeyMode
	clock   func() time.Time
}

func defaultOptions() options {
	return options{
		radius:  DefaultRadius,
		damping: DampingPerFrame,
		keyMode: KeyModeCompat,
		clock:   time.Now,
	}
}

// WithRadius sets the initial flashlight radius in window pixels.
// The value is clamped to [MinRadius, MaxRadius].
func WithRadius(r float32) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithDamping selects how momentum decays between frames.
func WithDamping(m DampingMode) Option {
	return func(o *options) {
		o.damping = m
	}
}

// WithKeyMode selects how the Control and reset keys react to
// press and release transitions.
func WithKeyMode(m KeyMode) Option {
	return func(o *options) {
		o.keyMode = m
	}
}

// WithClock replaces time.Now. Only DampingPerSecond reads the clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}
