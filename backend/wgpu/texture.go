package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/capture"
)

// captureTextureFormat stores the capture as sRGB so sampling returns
// linear color and the sRGB surface re-encodes it unchanged.
const captureTextureFormat = gputypes.TextureFormatRGBA8UnormSrgb

// captureTexture is the captured desktop on the GPU.
type captureTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

// uploadCapture copies img to a new texture. Images larger than the
// device limit are scaled down first.
func uploadCapture(device *wgpu.Device, img *capture.Image) (*captureTexture, error) {
	maxDim := int(device.Limits().MaxTextureDimension2D)
	fitted := capture.Fit(img, maxDim)
	if fitted != img {
		flashlight.Logger().Info("wgpu: capture scaled to fit texture limit",
			"from", fmt.Sprintf("%dx%d", img.Width, img.Height),
			"to", fmt.Sprintf("%dx%d", fitted.Width, fitted.Height),
			"limit", maxDim)
	}

	size := wgpu.Extent3D{
		Width:              uint32(fitted.Width),
		Height:             uint32(fitted.Height),
		DepthOrArrayLayers: 1,
	}
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "flashlight-capture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        captureTextureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create capture texture: %w", err)
	}

	err = device.Queue().WriteTexture(
		&wgpu.ImageCopyTexture{Texture: texture},
		fitted.Pix,
		&wgpu.ImageDataLayout{
			BytesPerRow:  uint32(fitted.Width * 4),
			RowsPerImage: uint32(fitted.Height),
		},
		&size,
	)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("write capture texture: %w", err)
	}

	view, err := device.CreateTextureView(texture, nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create capture view: %w", err)
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "flashlight-capture",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		view.Release()
		texture.Release()
		return nil, fmt.Errorf("create capture sampler: %w", err)
	}

	return &captureTexture{texture: texture, view: view, sampler: sampler}, nil
}

func (c *captureTexture) release() {
	if c == nil {
		return
	}
	c.sampler.Release()
	c.view.Release()
	c.texture.Release()
}
