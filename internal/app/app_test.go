package app

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/backend"
	"github.com/gogpu/flashlight/capture"
	"github.com/gogpu/gpucontext"
)

// source records the EventSource callbacks so tests can fire them.
type source struct {
	keyPress     func(gpucontext.Key, gpucontext.Modifiers)
	keyRelease   func(gpucontext.Key, gpucontext.Modifiers)
	mouseMove    func(float64, float64)
	mousePress   func(gpucontext.MouseButton, float64, float64)
	mouseRelease func(gpucontext.MouseButton, float64, float64)
	scroll       func(float64, float64)
	resize       func(int, int)
}

func (s *source) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers))   { s.keyPress = fn }
func (s *source) OnKeyRelease(fn func(gpucontext.Key, gpucontext.Modifiers)) { s.keyRelease = fn }
func (s *source) OnTextInput(func(string))                                   {}
func (s *source) OnMouseMove(fn func(float64, float64))                      { s.mouseMove = fn }
func (s *source) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	s.mousePress = fn
}
func (s *source) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	s.mouseRelease = fn
}
func (s *source) OnScroll(fn func(float64, float64))               { s.scroll = fn }
func (s *source) OnResize(fn func(int, int))                       { s.resize = fn }
func (s *source) OnFocus(func(bool))                               {}
func (s *source) OnIMECompositionStart(func())                     {}
func (s *source) OnIMECompositionUpdate(func(gpucontext.IMEState)) {}
func (s *source) OnIMECompositionEnd(func(string))                 {}

// fakeHost is a window driven by a script: each PollEvents runs the next
// step, and the window asks to close once the script is exhausted.
type fakeHost struct {
	source
	scrollEvent func(gpucontext.ScrollEvent)

	w, h   int
	script []func(h *fakeHost)
	polls  int
	closed bool
}

func (h *fakeHost) OnScrollEvent(fn func(gpucontext.ScrollEvent)) { h.scrollEvent = fn }

func (h *fakeHost) Size() (int, int) { return h.w, h.h }

func (h *fakeHost) PollEvents() {
	h.polls++
	if len(h.script) == 0 {
		h.closed = true
		return
	}
	step := h.script[0]
	h.script = h.script[1:]
	step(h)
}

func (h *fakeHost) ShouldClose() bool { return h.closed }

func (h *fakeHost) scrollLines(lines float64) {
	// Window convention: positive DeltaY scrolls down.
	h.scrollEvent(gpucontext.ScrollEvent{DeltaY: -lines, DeltaMode: gpucontext.ScrollDeltaLine})
}

func newSoftwareSurface(t *testing.T, w, h int) *backend.SoftwareSurface {
	t.Helper()
	img := &capture.Image{Width: 4, Height: 4, Pix: make([]byte, 4*4*4)}
	surf, err := backend.NewSoftwareSurface(img)
	if err != nil {
		t.Fatal(err)
	}
	if err := surf.Configure(w, h); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(surf.Release)
	return surf
}

func TestRunExitsOnEscape(t *testing.T) {
	host := &fakeHost{w: 800, h: 600, script: []func(*fakeHost){
		func(h *fakeHost) {
			h.mouseMove(10, 20)
			h.scrollLines(1)
		},
		func(h *fakeHost) {
			h.keyPress(gpucontext.KeyEscape, 0)
		},
	}}
	a := New(host, newSoftwareSurface(t, 800, 600))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if a.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", a.Frames())
	}
	if host.closed {
		t.Error("Run() waited for the window to close instead of exiting on Escape")
	}

	st := a.State()
	if p := st.Cursor.Position; p.X() != 10 || p.Y() != 20 {
		t.Errorf("cursor = %v, want (10, 20)", p)
	}
	if !mgl32.FloatEqualThreshold(st.Camera.Zoom, 1.0095, 1e-5) {
		t.Errorf("Zoom = %v, want 1.0095", st.Camera.Zoom)
	}
}

func TestRunExitsOnClose(t *testing.T) {
	host := &fakeHost{w: 320, h: 200}
	a := New(host, newSoftwareSurface(t, 320, 200))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if a.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", a.Frames())
	}
}

func TestRunContextCanceled(t *testing.T) {
	host := &fakeHost{w: 320, h: 200}
	a := New(host, newSoftwareSurface(t, 320, 200))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if host.polls != 0 {
		t.Errorf("polled %d times after cancel, want 0", host.polls)
	}
}

func TestRunResize(t *testing.T) {
	host := &fakeHost{w: 320, h: 200, script: []func(*fakeHost){
		func(h *fakeHost) {
			h.w, h.h = 64, 48
			h.resize(64, 48)
		},
	}}
	surf := newSoftwareSurface(t, 320, 200)
	a := New(host, surf)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	b := surf.Frame().Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("frame size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestRunKeysReachState(t *testing.T) {
	host := &fakeHost{w: 320, h: 200, script: []func(*fakeHost){
		func(h *fakeHost) {
			h.keyPress(gpucontext.KeyF, 0)
			h.keyRelease(gpucontext.KeyF, 0)
			h.mousePress(gpucontext.MouseButtonRight, 0, 0)
		},
	}}
	a := New(host, newSoftwareSurface(t, 320, 200), flashlight.WithRadius(50))

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if !a.State().Light.Enabled {
		t.Error("Light.Enabled = false after F press, want true")
	}
	if a.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1 (unbound keys must not exit)", a.Frames())
	}
}

// failingSurface fails every acquire.
type failingSurface struct{ err error }

func (s failingSurface) Configure(int, int) error            { return nil }
func (s failingSurface) Acquire() (flashlight.Target, error) { return nil, s.err }

func TestRunFatal(t *testing.T) {
	host := &fakeHost{w: 320, h: 200, script: []func(*fakeHost){
		func(*fakeHost) {}, func(*fakeHost) {},
	}}
	a := New(host, failingSurface{err: flashlight.ErrOutOfMemory})

	err := a.Run(context.Background())
	if !errors.Is(err, flashlight.ErrFatal) || !errors.Is(err, flashlight.ErrOutOfMemory) {
		t.Fatalf("Run() = %v, want ErrFatal wrapping ErrOutOfMemory", err)
	}
	if host.polls != 1 {
		t.Errorf("polls = %d, want 1", host.polls)
	}
}

func TestRunRecoversFromLostSurface(t *testing.T) {
	host := &fakeHost{w: 320, h: 200, script: []func(*fakeHost){
		func(*fakeHost) {}, func(*fakeHost) {},
	}}
	a := New(host, failingSurface{err: flashlight.ErrSurfaceLost})

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if host.polls != 3 {
		t.Errorf("polls = %d, want 3", host.polls)
	}
}

func TestQueueScrollLines(t *testing.T) {
	tests := []struct {
		name string
		ev   gpucontext.ScrollEvent
		want float64
	}{
		{"line up", gpucontext.ScrollEvent{DeltaY: -1, DeltaMode: gpucontext.ScrollDeltaLine}, 1},
		{"line down", gpucontext.ScrollEvent{DeltaY: 2, DeltaMode: gpucontext.ScrollDeltaLine}, -2},
		{"pixels", gpucontext.ScrollEvent{DeltaY: -40, DeltaMode: gpucontext.ScrollDeltaPixel}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{}
			q := NewQueue(host)
			host.scrollEvent(tt.ev)

			evs := q.Drain()
			if len(evs) != 1 {
				t.Fatalf("Drain() = %v, want one event", evs)
			}
			if got := evs[0].(flashlight.Scroll).Delta; got != tt.want {
				t.Errorf("Scroll.Delta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueuePlainSource(t *testing.T) {
	src := &source{}
	q := NewQueue(src)
	if src.scroll == nil {
		t.Fatal("queue did not subscribe to OnScroll on a plain source")
	}

	src.mouseMove(3, 4)
	src.scroll(0, 0)
	src.scroll(0, 1)
	src.mouseRelease(gpucontext.MouseButtonLeft, 3, 4)

	want := []flashlight.Event{
		flashlight.PointerMove{X: 3, Y: 4},
		flashlight.Scroll{Delta: -1},
		flashlight.ButtonRelease{Button: gpucontext.MouseButtonLeft},
	}
	got := q.Drain()
	if len(got) != len(want) {
		t.Fatalf("Drain() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}
	if evs := q.Drain(); len(evs) != 0 {
		t.Errorf("second Drain() = %v, want empty", evs)
	}
}

func TestQueueResized(t *testing.T) {
	host := &fakeHost{}
	q := NewQueue(host)

	if _, _, ok := q.Resized(); ok {
		t.Error("Resized() ok before any resize")
	}
	host.resize(100, 50)
	host.resize(200, 150)
	if w, h, ok := q.Resized(); !ok || w != 200 || h != 150 {
		t.Errorf("Resized() = %d, %d, %v, want 200, 150, true", w, h, ok)
	}
	if _, _, ok := q.Resized(); ok {
		t.Error("Resized() reported the same resize twice")
	}
}
