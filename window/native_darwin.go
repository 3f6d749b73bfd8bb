//go:build darwin

package window

import (
	"github.com/gogpu/wgpu/hal/metal"
)

// NativeHandle returns the content NSView* of the window, which is what
// the Metal backend attaches its layer to.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.win == nil {
		return 0, 0, ErrClosed
	}
	nsWindow := metal.ID(uintptr(w.win.GetCocoaWindow()))
	if nsWindow == 0 {
		return 0, 0, errNoHandle
	}
	view := metal.MsgSend(nsWindow, metal.Sel("contentView"))
	if view == 0 {
		return 0, 0, errNoHandle
	}
	return 0, uintptr(view), nil
}
