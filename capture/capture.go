// Package capture provides the one-shot desktop image the overlay draws.
//
// A Provider is called exactly once at startup. The result is a tightly
// packed RGBA8 buffer, rows ordered top to bottom, whose dimensions seed
// the extents of the full-screen quad.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

var (
	// ErrEmpty is returned when a capture has no pixels.
	ErrEmpty = errors.New("capture: empty image")

	// ErrNoDisplay is returned when no active display can be captured.
	ErrNoDisplay = errors.New("capture: no active display")
)

// Image is a captured frame.
type Image struct {
	Width  int
	Height int
	// Pix holds Width*Height*4 bytes of RGBA8, top row first.
	Pix []byte
}

// Provider produces the captured image.
type Provider interface {
	Capture(ctx context.Context) (*Image, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (*Image, error)

// Capture calls f(ctx).
func (f ProviderFunc) Capture(ctx context.Context) (*Image, error) {
	return f(ctx)
}

// FromImage converts any image.Image to a tightly packed Image.
// An *image.RGBA whose stride already equals Width*4 is shared, not copied.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == w*4 && b.Min == (image.Point{}) {
		return &Image{Width: w, Height: h, Pix: rgba.Pix[:w*h*4]}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &Image{Width: w, Height: h, Pix: dst.Pix}
}

// RGBA returns an *image.RGBA view that shares Pix.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Validate reports whether the image is non-empty and Pix matches its
// dimensions.
func (img *Image) Validate() error {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return ErrEmpty
	}
	if want := img.Width * img.Height * 4; len(img.Pix) != want {
		return fmt.Errorf("capture: %dx%d image has %d bytes, want %d", img.Width, img.Height, len(img.Pix), want)
	}
	return nil
}
