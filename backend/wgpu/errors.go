package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu"

	"github.com/gogpu/flashlight"
)

// Backend errors.
var (
	// ErrNotInitialized is returned when NewSurface is called before Init.
	ErrNotInitialized = errors.New("wgpu: backend not initialized")

	// ErrNoGPU is returned when no adapter can present to the window.
	ErrNoGPU = errors.New("wgpu: no compatible GPU found")

	// ErrUnknownAPI is returned by ParseGraphicsAPI for unknown names.
	ErrUnknownAPI = errors.New("wgpu: unknown graphics API")
)

// surfaceError annotates err with op and, when wgpu reports a surface
// condition the Synchronizer knows how to handle, the flashlight sentinel
// for it.
func surfaceError(op string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, wgpu.ErrSurfaceLost):
		sentinel = flashlight.ErrSurfaceLost
	case errors.Is(err, wgpu.ErrSurfaceOutdated):
		sentinel = flashlight.ErrSurfaceOutdated
	case errors.Is(err, wgpu.ErrTimeout):
		sentinel = flashlight.ErrSurfaceTimeout
	case errors.Is(err, wgpu.ErrOutOfMemory):
		sentinel = flashlight.ErrOutOfMemory
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel, err)
}
