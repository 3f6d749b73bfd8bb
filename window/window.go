// Package window hosts the overlay in a GLFW window created without a
// client API, so a WebGPU surface can be attached to its native handle.
//
// Window implements gpucontext.EventSource and gpucontext.ScrollEventSource:
// GLFW callbacks are translated to the gpucontext vocabulary and forwarded
// to the registered handlers while PollEvents runs. All methods must be
// called from the main OS thread.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/backend"
	"github.com/gogpu/gpucontext"
)

// Title is the window title.
const Title = "flashlight"

// Default windowed size.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// ErrClosed is returned by operations on a closed window.
var ErrClosed = errors.New("window: closed")

var errNoHandle = fmt.Errorf("window: %w", backend.ErrNoNativeHandle)

// Config controls how the window is opened.
type Config struct {
	// Windowed opens a decorated window instead of covering the
	// primary monitor.
	Windowed bool

	// Width and Height size a windowed window. Zero uses the defaults.
	Width, Height int
}

// Window is a GLFW window without a graphics context.
type Window struct {
	win     *glfw.Window
	cursors map[glfw.StandardCursor]*glfw.Cursor
	shape   gpucontext.CursorShape

	// Last cursor position in framebuffer pixels.
	x, y float64

	onKeyPress     func(gpucontext.Key, gpucontext.Modifiers)
	onKeyRelease   func(gpucontext.Key, gpucontext.Modifiers)
	onTextInput    func(string)
	onMouseMove    func(x, y float64)
	onMousePress   func(gpucontext.MouseButton, float64, float64)
	onMouseRelease func(gpucontext.MouseButton, float64, float64)
	onScroll       func(dx, dy float64)
	onScrollEvent  func(gpucontext.ScrollEvent)
	onResize       func(width, height int)
	onFocus        func(bool)
}

var (
	_ flashlight.Window            = (*Window)(nil)
	_ flashlight.CursorWarper      = (*Window)(nil)
	_ flashlight.CursorSetter      = (*Window)(nil)
	_ gpucontext.EventSource       = (*Window)(nil)
	_ gpucontext.ScrollEventSource = (*Window)(nil)
	_ backend.NativeWindow         = (*Window)(nil)
)

// Open initializes GLFW and opens the window. Without cfg.Windowed the
// window covers the primary monitor at its current video mode.
func Open(cfg Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	var (
		monitor *glfw.Monitor
		width   = cfg.Width
		height  = cfg.Height
	)
	if cfg.Windowed {
		if width <= 0 {
			width = DefaultWidth
		}
		if height <= 0 {
			height = DefaultHeight
		}
	} else {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			glfw.Terminate()
			return nil, errors.New("window: no primary monitor")
		}
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
	}

	win, err := glfw.CreateWindow(width, height, Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create: %w", err)
	}

	w := &Window{
		win:     win,
		cursors: make(map[glfw.StandardCursor]*glfw.Cursor),
	}
	w.x, w.y = w.toFramebuffer(win.GetCursorPos())
	w.installCallbacks()

	fw, fh := win.GetFramebufferSize()
	flashlight.Logger().Info("window: opened",
		"width", fw, "height", fh, "fullscreen", monitor != nil)
	return w, nil
}

func (w *Window) installCallbacks() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == gpucontext.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press:
			if w.onKeyPress != nil {
				w.onKeyPress(k, translateMods(mods))
			}
		case glfw.Release:
			if w.onKeyRelease != nil {
				w.onKeyRelease(k, translateMods(mods))
			}
		}
	})

	w.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		if w.onTextInput != nil {
			w.onTextInput(string(char))
		}
	})

	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.x, w.y = w.toFramebuffer(x, y)
		if w.onMouseMove != nil {
			w.onMouseMove(w.x, w.y)
		}
	})

	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			if w.onMousePress != nil {
				w.onMousePress(b, w.x, w.y)
			}
		case glfw.Release:
			if w.onMouseRelease != nil {
				w.onMouseRelease(b, w.x, w.y)
			}
		}
	})

	// GLFW reports positive yoff for scrolling up; gpucontext uses
	// positive for down.
	w.win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(xoff, -yoff)
		}
		if w.onScrollEvent != nil {
			w.onScrollEvent(gpucontext.ScrollEvent{
				X:         w.x,
				Y:         w.y,
				DeltaX:    xoff,
				DeltaY:    -yoff,
				DeltaMode: gpucontext.ScrollDeltaLine,
				Timestamp: timestamp(),
			})
		}
	})

	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if w.onFocus != nil {
			w.onFocus(focused)
		}
	})
}

func timestamp() time.Duration {
	return time.Duration(glfw.GetTime() * float64(time.Second))
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// ScaleFactor returns the ratio of framebuffer pixels to window
// coordinates.
func (w *Window) ScaleFactor() float64 {
	if w.win == nil {
		return 1
	}
	ww, _ := w.win.GetSize()
	fw, _ := w.win.GetFramebufferSize()
	if ww <= 0 || fw <= 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

func (w *Window) toFramebuffer(x, y float64) (float64, float64) {
	s := w.ScaleFactor()
	return x * s, y * s
}

// SetCursorPos warps the cursor to framebuffer pixel (x, y).
func (w *Window) SetCursorPos(x, y float64) {
	if w.win == nil {
		return
	}
	s := w.ScaleFactor()
	w.win.SetCursorPos(x/s, y/s)
	w.x, w.y = x, y
}

// SetCursor changes the cursor shape. Standard cursors are created on
// first use and kept until Close.
func (w *Window) SetCursor(shape gpucontext.CursorShape) {
	if w.win == nil || shape == w.shape {
		return
	}
	w.shape = shape

	if shape == gpucontext.CursorNone {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		return
	}
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	if shape == gpucontext.CursorDefault {
		w.win.SetCursor(nil)
		return
	}
	std := standardCursor(shape)
	c, ok := w.cursors[std]
	if !ok {
		c = glfw.CreateStandardCursor(std)
		w.cursors[std] = c
	}
	w.win.SetCursor(c)
}

// PollEvents processes pending window events, invoking the registered
// callbacks.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.win == nil || w.win.ShouldClose()
}

// Close destroys the window and terminates GLFW. It is safe to call more
// than once.
func (w *Window) Close() {
	if w.win == nil {
		return
	}
	for _, c := range w.cursors {
		c.Destroy()
	}
	w.cursors = nil
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	flashlight.Logger().Debug("window: closed")
}

// OnKeyPress registers the key press handler. Key repeats are not
// delivered.
func (w *Window) OnKeyPress(fn func(key gpucontext.Key, mods gpucontext.Modifiers)) {
	w.onKeyPress = fn
}

// OnKeyRelease registers the key release handler.
func (w *Window) OnKeyRelease(fn func(key gpucontext.Key, mods gpucontext.Modifiers)) {
	w.onKeyRelease = fn
}

// OnTextInput registers the text input handler.
func (w *Window) OnTextInput(fn func(text string)) { w.onTextInput = fn }

// OnMouseMove registers the cursor motion handler. Positions are in
// framebuffer pixels.
func (w *Window) OnMouseMove(fn func(x, y float64)) { w.onMouseMove = fn }

// OnMousePress registers the mouse button press handler.
func (w *Window) OnMousePress(fn func(button gpucontext.MouseButton, x, y float64)) {
	w.onMousePress = fn
}

// OnMouseRelease registers the mouse button release handler.
func (w *Window) OnMouseRelease(fn func(button gpucontext.MouseButton, x, y float64)) {
	w.onMouseRelease = fn
}

// OnScroll registers the wheel handler. dy is positive for scrolling down.
func (w *Window) OnScroll(fn func(dx, dy float64)) { w.onScroll = fn }

// OnScrollEvent registers the detailed wheel handler.
func (w *Window) OnScrollEvent(fn func(gpucontext.ScrollEvent)) { w.onScrollEvent = fn }

// OnResize registers the framebuffer resize handler.
func (w *Window) OnResize(fn func(width, height int)) { w.onResize = fn }

// OnFocus registers the focus change handler.
func (w *Window) OnFocus(fn func(focused bool)) { w.onFocus = fn }

// GLFW 3.3 has no IME composition events.

func (w *Window) OnIMECompositionStart(func())                           {}
func (w *Window) OnIMECompositionUpdate(func(state gpucontext.IMEState)) {}
func (w *Window) OnIMECompositionEnd(func(committed string))             {}
