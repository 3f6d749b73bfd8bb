package flashlight

import "github.com/go-gl/mathgl/mgl32"

// State is everything the overlay remembers between frames. It is owned by
// the render loop goroutine and mutated in place; it is not safe for
// concurrent use.
type State struct {
	Camera Camera
	Cursor Cursor
	Light  Light
	Mods   Modifiers

	keyMode KeyMode
	clock   stepClock
}

// NewState creates the startup state: zoom 1, no pan, light off at the
// configured radius.
func NewState(opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &State{
		Camera:  NewCamera(),
		Light:   NewLight(o.radius),
		keyMode: o.keyMode,
		clock:   stepClock{mode: o.damping, now: o.clock},
	}
}

// KeyMode returns the key transition mode the state was created with.
func (s *State) KeyMode() KeyMode { return s.keyMode }

// DampingMode returns the damping mode the state was created with.
func (s *State) DampingMode() DampingMode { return s.clock.mode }

// Update runs the per-frame integration for a window of sw by sh pixels:
// drag wrap, then light and camera damping. It reports whether the cursor
// was teleported, in which case the OS cursor must be moved to
// s.Cursor.Position.
func (s *State) Update(sw, sh float32) (warped bool) {
	if s.Cursor.Dragging() {
		var pan mgl32.Vec2
		pan, warped = s.Cursor.Resolve(sw, sh)
		s.Camera.Target = s.Camera.Target.Add(pan)
	}

	frames := s.clock.next()
	s.Light.Step(frames)
	s.Camera.Step(frames)
	return warped
}

// Params builds the shader parameter block for a window of sw by sh pixels.
func (s *State) Params(sw, sh float32) OverlayParams {
	return OverlayParams{
		Projection: s.Camera.Projection(sw, sh),
		Cursor:     s.Cursor.Position,
		Enabled:    s.Light.Enabled,
		Radius:     s.Light.Radius,
	}
}
