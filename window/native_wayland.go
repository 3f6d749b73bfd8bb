//go:build (linux && wayland) || (freebsd && wayland) || (netbsd && wayland) || (openbsd && wayland)

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the wl_display* and wl_surface*.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.win == nil {
		return 0, 0, ErrClosed
	}
	display = uintptr(unsafe.Pointer(glfw.GetWaylandDisplay()))
	window = uintptr(unsafe.Pointer(w.win.GetWaylandWindow()))
	if display == 0 || window == 0 {
		return 0, 0, errNoHandle
	}
	return display, window, nil
}
