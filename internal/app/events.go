package app

import (
	"github.com/gogpu/flashlight"
	"github.com/gogpu/gpucontext"
)

// pixelsPerLine converts pixel-precise scroll deltas (touchpads) to wheel
// lines.
const pixelsPerLine = 20

// Queue buffers window callbacks as flashlight events until the run loop
// drains them, so a frame's input is applied in one place and in order.
type Queue struct {
	events []flashlight.Event

	resized       bool
	width, height int
}

// NewQueue creates a queue subscribed to src. If src also implements
// gpucontext.ScrollEventSource, detailed scroll events are used so pixel
// deltas can be converted to lines.
func NewQueue(src gpucontext.EventSource) *Queue {
	q := &Queue{}

	src.OnMouseMove(func(x, y float64) {
		q.push(flashlight.PointerMove{X: x, Y: y})
	})
	src.OnMousePress(func(b gpucontext.MouseButton, _, _ float64) {
		q.push(flashlight.ButtonPress{Button: b})
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, _, _ float64) {
		q.push(flashlight.ButtonRelease{Button: b})
	})
	src.OnKeyPress(func(k gpucontext.Key, _ gpucontext.Modifiers) {
		q.push(flashlight.KeyPress{Key: k})
	})
	src.OnKeyRelease(func(k gpucontext.Key, _ gpucontext.Modifiers) {
		q.push(flashlight.KeyRelease{Key: k})
	})
	src.OnResize(func(w, h int) {
		q.resized = true
		q.width, q.height = w, h
	})

	if ss, ok := src.(gpucontext.ScrollEventSource); ok {
		ss.OnScrollEvent(func(ev gpucontext.ScrollEvent) {
			if d := scrollLines(ev); d != 0 {
				q.push(flashlight.Scroll{Delta: d})
			}
		})
	} else {
		src.OnScroll(func(_, dy float64) {
			if dy != 0 {
				q.push(flashlight.Scroll{Delta: -dy})
			}
		})
	}
	return q
}

// scrollLines returns the vertical wheel motion in lines, positive for
// scrolling up.
func scrollLines(ev gpucontext.ScrollEvent) float64 {
	switch ev.DeltaMode {
	case gpucontext.ScrollDeltaPixel:
		return -ev.DeltaY / pixelsPerLine
	default:
		return -ev.DeltaY
	}
}

func (q *Queue) push(ev flashlight.Event) {
	q.events = append(q.events, ev)
}

// Drain returns the buffered events in arrival order and empties the
// queue. The returned slice is only valid until the next callback.
func (q *Queue) Drain() []flashlight.Event {
	evs := q.events
	q.events = q.events[:0]
	return evs
}

// Resized returns the last framebuffer size reported since the previous
// call, if any.
func (q *Queue) Resized() (width, height int, ok bool) {
	if !q.resized {
		return 0, 0, false
	}
	q.resized = false
	return q.width, q.height, true
}
