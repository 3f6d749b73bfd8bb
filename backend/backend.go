package backend

import (
	"errors"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/capture"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrNoNativeHandle is returned when a backend needs OS window handles
	// and the window does not provide them.
	ErrNoNativeHandle = errors.New("backend: window has no native handle")
)

// NativeWindow is a window that exposes the platform handles a GPU
// surface is created from.
type NativeWindow interface {
	flashlight.Window

	// NativeHandle returns the display connection (X11 Display*, or 0 where
	// the platform has none) and the window handle (X11 Window, HWND,
	// NSView*).
	NativeHandle() (display, window uintptr, err error)
}

// Surface is a flashlight.Surface owned by a backend.
type Surface interface {
	flashlight.Surface

	// Release frees the surface and every GPU object created for it.
	Release()
}

// RenderBackend is the interface for rendering backends.
// It abstracts the rendering implementation so the overlay can present
// through the GPU or fall back to the CPU.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the backend.
	// This should be called before NewSurface.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// NewSurface creates a surface presenting into win that draws img on
	// the overlay quad. The surface is configured for the current window
	// size.
	NewSurface(win flashlight.Window, img *capture.Image) (Surface, error)
}

// FixedSize is a flashlight.Window of constant size, for offscreen
// rendering.
type FixedSize struct {
	Width, Height int
}

// Size returns the fixed dimensions.
func (f FixedSize) Size() (int, int) { return f.Width, f.Height }
