package capture

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Fit returns img unchanged when both sides are at most maxDim, otherwise a
// copy scaled down to fit, keeping the aspect ratio.
//
// GPUs cap texture sizes (MaxTextureDimension2D). The quad keeps the
// original capture extents, so a smaller texture only costs sharpness.
func Fit(img *Image, maxDim int) *Image {
	if maxDim <= 0 || (img.Width <= maxDim && img.Height <= maxDim) {
		return img
	}

	w, h := img.Width, img.Height
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img.RGBA(), image.Rect(0, 0, img.Width, img.Height), xdraw.Src, nil)
	return &Image{Width: w, Height: h, Pix: dst.Pix}
}
