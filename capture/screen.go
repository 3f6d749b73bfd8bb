package capture

import (
	"context"
	"fmt"

	"github.com/kbinani/screenshot"

	"github.com/gogpu/flashlight"
)

// Screen captures one display.
type Screen struct {
	// Display is the index passed to screenshot.CaptureDisplay.
	Display int
}

// Capture grabs the configured display. Indices out of range fall back to
// the primary display.
func (s Screen) Capture(ctx context.Context) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, ErrNoDisplay
	}
	display := s.Display
	if display < 0 || display >= n {
		flashlight.Logger().Warn("capture: display out of range, using primary",
			"display", display, "active", n)
		display = 0
	}

	bounds := screenshot.GetDisplayBounds(display)
	rgba, err := screenshot.CaptureDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("capture: display %d: %w", display, err)
	}

	img := FromImage(rgba)
	if err := img.Validate(); err != nil {
		return nil, err
	}
	flashlight.Logger().Info("capture: screen grabbed",
		"display", display, "bounds", bounds, "width", img.Width, "height", img.Height)
	return img, nil
}
