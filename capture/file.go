package capture

import (
	"context"
	"fmt"
	"image"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/flashlight"
)

// File loads a still image instead of grabbing the screen.
type File struct {
	Path string
}

// Capture decodes the file at f.Path.
func (f File) Capture(ctx context.Context) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	defer fh.Close()

	src, format, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("capture: decode %s: %w", f.Path, err)
	}

	img := FromImage(src)
	if err := img.Validate(); err != nil {
		return nil, err
	}
	flashlight.Logger().Info("capture: image loaded",
		"path", f.Path, "format", format, "width", img.Width, "height", img.Height)
	return img, nil
}
