package app

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/flashlight"
)

var errNotPresented = errors.New("app: snapshot frame was not presented")

// Snapshot renders a single frame of state into surface, sized by size.
// The surface must already be configured.
func Snapshot(surface flashlight.Surface, size flashlight.Window, state *flashlight.State) error {
	sync := flashlight.NewSynchronizer(state, surface, size)
	status, err := sync.Frame()
	if err != nil {
		return err
	}
	if status != flashlight.FramePresented {
		return fmt.Errorf("%w: %v", errNotPresented, status)
	}
	return nil
}

// WritePNG encodes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("app: create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("app: close snapshot: %w", cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("app: encode snapshot: %w", err)
	}
	flashlight.Logger().Info("app: snapshot written", "path", path,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
