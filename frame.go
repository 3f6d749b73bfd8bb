package flashlight

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Surface is the presentable target backing the window.
type Surface interface {
	// Configure (re)creates the swapchain for the given pixel size.
	Configure(width, height int) error

	// Acquire returns the next frame target. Errors should wrap one of
	// ErrSurfaceLost, ErrSurfaceOutdated, ErrSurfaceTimeout or
	// ErrOutOfMemory when they are one of those conditions.
	Acquire() (Target, error)
}

// Target is one acquired frame.
type Target interface {
	// Upload writes the parameter block for this frame.
	Upload(params OverlayParams) error

	// DrawQuad records one indexed draw of QuadIndexCount indices
	// sampling the captured texture.
	DrawQuad() error

	// Present submits the frame.
	Present() error

	// Discard releases the frame without presenting it.
	Discard()
}

// Window is the part of the host window the Synchronizer reads.
// gpucontext.WindowProvider satisfies it.
type Window interface {
	Size() (width, height int)
}

// CursorWarper moves the OS cursor. Windows that implement it keep the
// visible cursor in step with drag wrapping.
type CursorWarper interface {
	SetCursorPos(x, y float64)
}

// CursorSetter changes the cursor shape. gpucontext.PlatformProvider
// satisfies it.
type CursorSetter interface {
	SetCursor(shape gpucontext.CursorShape)
}

// SurfaceState is the lifecycle state of the presentable surface.
type SurfaceState int

const (
	// SurfaceReady means frames can be acquired.
	SurfaceReady SurfaceState = iota
	// SurfaceNeedsReconfigure means the next Frame reconfigures first.
	SurfaceNeedsReconfigure
	// SurfaceFatal means no further frames will be drawn.
	SurfaceFatal
)

// String returns the state name.
func (s SurfaceState) String() string {
	switch s {
	case SurfaceReady:
		return "Ready"
	case SurfaceNeedsReconfigure:
		return "NeedsReconfigure"
	case SurfaceFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// FrameStatus is the outcome of one Frame call.
type FrameStatus int

const (
	// FramePresented means a frame reached the screen.
	FramePresented FrameStatus = iota
	// FrameSkipped means nothing was drawn: the surface timed out, was
	// lost, or the window has no area.
	FrameSkipped
	// FrameFailed means the surface became fatal.
	FrameFailed
)

// String returns the status name.
func (s FrameStatus) String() string {
	switch s {
	case FramePresented:
		return "Presented"
	case FrameSkipped:
		return "Skipped"
	case FrameFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Synchronizer turns State into presented frames and owns the surface
// recovery state machine.
//
//	Ready ──Lost/Outdated──▶ NeedsReconfigure ──Configure──▶ Ready
//	Ready ──OutOfMemory/unknown──▶ Fatal
//	Ready ──Timeout──▶ Ready
type Synchronizer struct {
	state   *State
	surface Surface
	window  Window
	warper  CursorWarper
	shaper  CursorSetter

	surfaceState SurfaceState
	width        int
	height       int
	shape        gpucontext.CursorShape
}

// NewSynchronizer creates a Synchronizer for an already configured
// surface. If window also implements CursorWarper or CursorSetter those
// capabilities are used for drag wrapping and the grab cursor.
func NewSynchronizer(state *State, surface Surface, window Window) *Synchronizer {
	s := &Synchronizer{
		state:   state,
		surface: surface,
		window:  window,
		shape:   state.Cursor.Shape,
	}
	s.width, s.height = window.Size()
	if w, ok := window.(CursorWarper); ok {
		s.warper = w
	}
	if c, ok := window.(CursorSetter); ok {
		s.shaper = c
	}
	return s
}

// SurfaceState returns the current surface lifecycle state.
func (s *Synchronizer) SurfaceState() SurfaceState { return s.surfaceState }

// Size returns the pixel size frames are currently built for.
func (s *Synchronizer) Size() (width, height int) { return s.width, s.height }

// Resize reconfigures the surface for a new window size. Zero sizes
// (minimized windows) are ignored.
func (s *Synchronizer) Resize(width, height int) error {
	if width <= 0 || height <= 0 || s.surfaceState == SurfaceFatal {
		return nil
	}
	s.width, s.height = width, height
	return s.configure()
}

func (s *Synchronizer) configure() error {
	if err := s.surface.Configure(s.width, s.height); err != nil {
		return s.fail(fmt.Errorf("configure %dx%d: %w", s.width, s.height, err))
	}
	s.surfaceState = SurfaceReady
	Logger().Debug("flashlight: surface configured", "width", s.width, "height", s.height)
	return nil
}

func (s *Synchronizer) fail(err error) error {
	s.surfaceState = SurfaceFatal
	Logger().Error("flashlight: fatal surface error",
		"kind", ClassifySurfaceError(err).String(), "err", err)
	return fmt.Errorf("%w: %w", ErrFatal, err)
}

// Frame runs one loop iteration: reconfigure if needed, integrate the
// state, then acquire, upload, draw and present.
//
// Recoverable surface conditions are handled here and reported as
// FrameSkipped with a nil error. A non-nil error always wraps ErrFatal;
// the caller should exit.
func (s *Synchronizer) Frame() (FrameStatus, error) {
	switch s.surfaceState {
	case SurfaceFatal:
		return FrameFailed, ErrFatal
	case SurfaceNeedsReconfigure:
		w, h := s.window.Size()
		if w <= 0 || h <= 0 {
			return FrameSkipped, nil
		}
		s.width, s.height = w, h
		if err := s.configure(); err != nil {
			return FrameFailed, err
		}
	}

	sw, sh := float32(s.width), float32(s.height)
	if s.state.Update(sw, sh) && s.warper != nil {
		p := s.state.Cursor.Position
		s.warper.SetCursorPos(float64(p[0]), float64(p[1]))
	}
	s.syncShape()

	target, err := s.surface.Acquire()
	if err != nil {
		return s.handleError("acquire", err)
	}

	if err := s.draw(target, s.state.Params(sw, sh)); err != nil {
		target.Discard()
		return s.handleError("draw", err)
	}
	if err := target.Present(); err != nil {
		return s.handleError("present", err)
	}
	return FramePresented, nil
}

func (s *Synchronizer) draw(target Target, params OverlayParams) error {
	if err := target.Upload(params); err != nil {
		return fmt.Errorf("upload params: %w", err)
	}
	if err := target.DrawQuad(); err != nil {
		return fmt.Errorf("draw quad: %w", err)
	}
	return nil
}

// handleError applies the state machine transition for a failed step.
func (s *Synchronizer) handleError(step string, err error) (FrameStatus, error) {
	kind := ClassifySurfaceError(err)
	switch kind {
	case SurfaceErrorLost, SurfaceErrorOutdated:
		s.surfaceState = SurfaceNeedsReconfigure
		Logger().Warn("flashlight: surface needs reconfigure", "step", step, "kind", kind.String())
		return FrameSkipped, nil
	case SurfaceErrorTimeout:
		Logger().Warn("flashlight: surface timeout", "step", step)
		return FrameSkipped, nil
	default:
		return FrameFailed, s.fail(fmt.Errorf("%s: %w", step, err))
	}
}

func (s *Synchronizer) syncShape() {
	shape := s.state.Cursor.Shape
	if shape == s.shape {
		return
	}
	s.shape = shape
	if s.shaper != nil {
		s.shaper.SetCursor(shape)
	}
}
