//go:build !linux && !freebsd && !netbsd && !openbsd && !windows && !darwin

package window

// NativeHandle is not supported on this platform.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	return 0, 0, errNoHandle
}
