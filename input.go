package flashlight

import "github.com/gogpu/gpucontext"

// Key bindings.
const (
	KeyFlashlight = gpucontext.KeyF
	KeyReset      = gpucontext.KeyR
)

// KeyMode selects how Control and reset keys react to transitions.
type KeyMode int

const (
	// KeyModeCompat toggles the Ctrl flag on every press and release of
	// either Control key, and resets the camera on press and release of
	// the reset key. This matches the behavior users of the overlay know.
	KeyModeCompat KeyMode = iota

	// KeyModeStrict tracks Ctrl as held between press and release and
	// resets the camera on press only.
	KeyModeStrict
)

// String returns the mode name as used in configuration.
func (m KeyMode) String() string {
	switch m {
	case KeyModeCompat:
		return "compat"
	case KeyModeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Event is a raw input event. The concrete types are PointerMove,
// ButtonPress, ButtonRelease, Scroll, KeyPress and KeyRelease.
type Event interface {
	event()
}

// PointerMove is a cursor move to window pixel (X, Y).
type PointerMove struct {
	X, Y float64
}

// ButtonPress is a mouse button going down.
type ButtonPress struct {
	Button gpucontext.MouseButton
}

// ButtonRelease is a mouse button going up.
type ButtonRelease struct {
	Button gpucontext.MouseButton
}

// Scroll is a vertical wheel motion in lines. Positive is away from the
// user (scroll up), which zooms in.
type Scroll struct {
	Delta float64
}

// KeyPress is a physical key going down.
type KeyPress struct {
	Key gpucontext.Key
}

// KeyRelease is a physical key going up.
type KeyRelease struct {
	Key gpucontext.Key
}

func (PointerMove) event()   {}
func (ButtonPress) event()   {}
func (ButtonRelease) event() {}
func (Scroll) event()        {}
func (KeyPress) event()      {}
func (KeyRelease) event()    {}

// Modifiers is the modifier state that changes what scrolling does.
type Modifiers struct {
	Ctrl bool
}

// Apply applies one input event to the state and reports whether the
// event was consumed. Unconsumed events should get their default
// handling from the caller (Escape closing the window, for instance).
func (s *State) Apply(ev Event) bool {
	switch e := ev.(type) {
	case PointerMove:
		s.Cursor.Position[0] = float32(e.X)
		s.Cursor.Position[1] = float32(e.Y)
		return true

	case ButtonPress:
		if e.Button != gpucontext.MouseButtonLeft {
			return false
		}
		s.Cursor.BeginDrag()
		return true

	case ButtonRelease:
		if e.Button != gpucontext.MouseButtonLeft {
			return false
		}
		s.Cursor.EndDrag()
		return true

	case Scroll:
		d := float32(e.Delta)
		if s.Mods.Ctrl {
			s.Light.Velocity += CameraAcceleration * d * radiusPerLine
		} else {
			s.Camera.Velocity += CameraAcceleration * d
		}
		return true

	case KeyPress:
		return s.key(e.Key, true)

	case KeyRelease:
		return s.key(e.Key, false)
	}
	return false
}

func (s *State) key(k gpucontext.Key, pressed bool) bool {
	switch k {
	case gpucontext.KeyLeftControl, gpucontext.KeyRightControl:
		if s.keyMode == KeyModeStrict {
			s.Mods.Ctrl = pressed
		} else {
			s.Mods.Ctrl = !s.Mods.Ctrl
		}
		return true

	case KeyFlashlight:
		if !pressed {
			return false
		}
		s.Light.Toggle()
		return true

	case KeyReset:
		if !pressed && s.keyMode == KeyModeStrict {
			return true
		}
		s.Camera.Reset()
		return true
	}
	return false
}
