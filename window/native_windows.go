//go:build windows

package window

import "unsafe"

// NativeHandle returns the HWND. Windows surfaces need no display handle.
func (w *Window) NativeHandle() (display, window uintptr, err error) {
	if w.win == nil {
		return 0, 0, ErrClosed
	}
	window = uintptr(unsafe.Pointer(w.win.GetWin32Window()))
	if window == 0 {
		return 0, 0, errNoHandle
	}
	return 0, window, nil
}
