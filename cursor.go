package flashlight

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
)

// Cursor tracks the pointer and the pan drag.
//
// While a drag is active the cursor is teleported to the opposite window
// edge whenever it touches one, so the drag never runs out of screen.
type Cursor struct {
	// Position is the last pointer position in window pixels.
	Position mgl32.Vec2

	// Shape is the cursor affordance the window should show:
	// CursorMove while dragging, CursorDefault otherwise.
	Shape gpucontext.CursorShape

	anchor   mgl32.Vec2
	dragging bool
}

// Dragging reports whether the left button is held.
func (c *Cursor) Dragging() bool {
	return c.dragging
}

// Anchor returns the position displacement is measured from. Only
// meaningful while dragging.
func (c *Cursor) Anchor() mgl32.Vec2 {
	return c.anchor
}

// BeginDrag anchors a drag at the current position.
func (c *Cursor) BeginDrag() {
	c.anchor = c.Position
	c.dragging = true
	c.Shape = gpucontext.CursorMove
}

// EndDrag ends the drag and restores the default cursor.
func (c *Cursor) EndDrag() {
	c.anchor = mgl32.Vec2{}
	c.dragging = false
	c.Shape = gpucontext.CursorDefault
}

// Resolve runs one wrap step for a window of sw by sh pixels.
//
// It returns the pointer displacement since the anchor as pan, wraps
// Position across at most one edge and re-anchors the drag at the result.
// warped is true when Position changed and the OS cursor must follow.
// Without an active drag Resolve does nothing.
//
// Edges are checked in priority order: left, top, right, bottom. A final
// pass moves a cursor still sitting on x == 0 to the right edge.
func (c *Cursor) Resolve(sw, sh float32) (pan mgl32.Vec2, warped bool) {
	if !c.dragging {
		return mgl32.Vec2{}, false
	}

	pan = c.Position.Sub(c.anchor)

	p := c.Position
	switch {
	case p[0] == 0:
		p[0] = sw
	case p[1] == 0:
		p[1] = sh
	case p[0]+1 >= sw:
		p[0] = 1
	case p[1]+1 >= sh:
		p[1] = 0
	}
	if p[0] == 0 {
		p[0] = sw
	}

	warped = p != c.Position
	c.Position = p
	c.anchor = p
	return pan, warped
}
