package flashlight

import "errors"

// Surface errors. Backends wrap their native errors with these sentinels
// (fmt.Errorf("acquire: %w", ErrSurfaceLost)) so the Synchronizer can
// classify them with errors.Is.
var (
	// ErrSurfaceLost means the presentable surface must be reconfigured.
	ErrSurfaceLost = errors.New("flashlight: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window.
	ErrSurfaceOutdated = errors.New("flashlight: surface outdated")

	// ErrSurfaceTimeout means no frame became available in time.
	ErrSurfaceTimeout = errors.New("flashlight: surface timeout")

	// ErrOutOfMemory means the device ran out of memory.
	ErrOutOfMemory = errors.New("flashlight: out of memory")

	// ErrFatal is returned by Synchronizer.Frame once the surface reached
	// an unrecoverable state. The process is expected to exit.
	ErrFatal = errors.New("flashlight: fatal surface error")
)

// SurfaceErrorKind is the recovery class of a surface error.
type SurfaceErrorKind int

const (
	// SurfaceErrorNone is the kind of a nil error.
	SurfaceErrorNone SurfaceErrorKind = iota
	// SurfaceErrorLost is recovered by reconfiguring the surface.
	SurfaceErrorLost
	// SurfaceErrorOutdated is recovered by reconfiguring the surface.
	SurfaceErrorOutdated
	// SurfaceErrorTimeout is retried on the next frame.
	SurfaceErrorTimeout
	// SurfaceErrorOutOfMemory is fatal.
	SurfaceErrorOutOfMemory
	// SurfaceErrorUnknown is any other error. Treated as fatal.
	SurfaceErrorUnknown
)

// String returns the kind name.
func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceErrorNone:
		return "None"
	case SurfaceErrorLost:
		return "Lost"
	case SurfaceErrorOutdated:
		return "Outdated"
	case SurfaceErrorTimeout:
		return "Timeout"
	case SurfaceErrorOutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// Recoverable reports whether the frame loop can continue after an error
// of this kind.
func (k SurfaceErrorKind) Recoverable() bool {
	switch k {
	case SurfaceErrorNone, SurfaceErrorLost, SurfaceErrorOutdated, SurfaceErrorTimeout:
		return true
	default:
		return false
	}
}

// ClassifySurfaceError maps err onto a SurfaceErrorKind.
func ClassifySurfaceError(err error) SurfaceErrorKind {
	switch {
	case err == nil:
		return SurfaceErrorNone
	case errors.Is(err, ErrSurfaceLost):
		return SurfaceErrorLost
	case errors.Is(err, ErrSurfaceOutdated):
		return SurfaceErrorOutdated
	case errors.Is(err, ErrSurfaceTimeout):
		return SurfaceErrorTimeout
	case errors.Is(err, ErrOutOfMemory):
		return SurfaceErrorOutOfMemory
	default:
		return SurfaceErrorUnknown
	}
}
