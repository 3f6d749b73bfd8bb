// Package flashlight implements the camera and overlay engine behind the
// flashlight screen overlay.
//
// # Overview
//
// The overlay shows a frozen capture of the desktop, darkened everywhere
// except for a circle around the mouse cursor. The captured image can be
// panned by dragging with the left button and zoomed with the scroll
// wheel; both motions carry momentum and decay over a few hundred frames.
//
// This package holds the state and the per-frame logic only. It does not
// open windows, capture screens or talk to a GPU. Those concerns live in
// sub-packages that plug into the small interfaces declared here:
//
//   - capture: grabs the desktop image once at startup
//   - backend, backend/wgpu: implement [Surface] and [Target]
//   - window: delivers input events and warps the OS cursor
//
// # Quick Start
//
//	state := flashlight.NewState(flashlight.WithRadius(130))
//
//	// Feed input as it arrives.
//	state.Apply(flashlight.PointerMove{X: 400, Y: 300})
//	state.Apply(flashlight.Scroll{Delta: 1})
//
//	// Drive one frame per loop iteration.
//	sync := flashlight.NewSynchronizer(state, surface, win)
//	for !win.ShouldClose() {
//		win.PollEvents()
//		if _, err := sync.Frame(); err != nil {
//			return err
//		}
//	}
//
// # Controls
//
//   - Left drag: pan, wrapping the cursor around the screen edges
//   - Scroll: zoom around the window center
//   - Ctrl + scroll: change the flashlight radius
//   - F: toggle the flashlight
//   - R: reset pan and zoom
//
// # Coordinate System
//
// Cursor positions are window pixels with the origin at the top-left.
// The captured image occupies the world rectangle (0,0)-(width,height)
// with y pointing up, so the projection built by [Camera.Projection]
// maps the full capture onto the window at zoom 1.
package flashlight
