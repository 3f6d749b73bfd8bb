// Package app runs the overlay: it pumps window events into the state,
// forwards resizes to the frame synchronizer, and draws one frame per loop
// iteration until the window closes or the surface fails.
package app

import (
	"context"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/gpucontext"
)

// Host is the window the overlay runs in.
type Host interface {
	flashlight.Window
	gpucontext.EventSource

	// PollEvents delivers pending window events to the registered
	// callbacks.
	PollEvents()

	// ShouldClose reports a close request from the window system.
	ShouldClose() bool
}

// App owns the state and the synchronizer for one overlay session.
type App struct {
	host  Host
	queue *Queue
	state *flashlight.State
	sync  *flashlight.Synchronizer

	frames int
}

// New wires a host window and a configured surface into an App. The
// event callbacks of host are taken over by the App.
func New(host Host, surface flashlight.Surface, opts ...flashlight.Option) *App {
	state := flashlight.NewState(opts...)
	return &App{
		host:  host,
		queue: NewQueue(host),
		state: state,
		sync:  flashlight.NewSynchronizer(state, surface, host),
	}
}

// State returns the overlay state.
func (a *App) State() *flashlight.State { return a.state }

// Frames returns the number of frames presented so far.
func (a *App) Frames() int { return a.frames }

// Run loops until the window is closed, Escape is pressed, ctx is done,
// or the surface fails. Only the last case returns an error, and it wraps
// flashlight.ErrFatal.
//
// Run must be called from the thread that created the host window.
func (a *App) Run(ctx context.Context) error {
	log := flashlight.Logger()
	w, h := a.sync.Size()
	log.Info("app: running", "width", w, "height", h)

	for {
		if ctx.Err() != nil {
			log.Info("app: context done", "frames", a.frames)
			return nil
		}

		a.host.PollEvents()
		if a.step() {
			log.Info("app: exit requested", "frames", a.frames)
			return nil
		}

		if w, h, ok := a.queue.Resized(); ok {
			if err := a.sync.Resize(w, h); err != nil {
				return err
			}
		}

		status, err := a.sync.Frame()
		if err != nil {
			return err
		}
		if status == flashlight.FramePresented {
			a.frames++
		}
	}
}

// step applies the queued events and reports whether the loop should
// stop.
func (a *App) step() (exit bool) {
	for _, ev := range a.queue.Drain() {
		if a.state.Apply(ev) {
			continue
		}
		if k, ok := ev.(flashlight.KeyPress); ok && k.Key == gpucontext.KeyEscape {
			exit = true
		}
	}
	return exit || a.host.ShouldClose()
}
