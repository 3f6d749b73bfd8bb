//go:build (linux && !wayland) || (freebsd && !wayland) || (netbsd && !wayland) || (openbsd && !wayland)

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// NativeHandle returns the X11 Display* and Window id.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.win == nil {
		return 0, 0, ErrClosed
	}
	display = uintptr(unsafe.Pointer(glfw.GetX11Display()))
	window = uintptr(w.win.GetX11Window())
	if display == 0 || window == 0 {
		return 0, 0, errNoHandle
	}
	return display, window, nil
}
