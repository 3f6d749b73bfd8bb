package wgpu

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/flashlight"
)

var errFrameDone = errors.New("wgpu: frame already presented or discarded")

// surfaceConfig is the format, present mode and alpha mode a surface is
// configured with.
type surfaceConfig struct {
	format      gputypes.TextureFormat
	presentMode gputypes.PresentMode
	alphaMode   gputypes.CompositeAlphaMode
}

// chooseSurfaceConfig prefers an sRGB format and otherwise takes the first
// of each capability. Missing capabilities fall back to values every
// backend supports.
func chooseSurfaceConfig(caps *wgpu.SurfaceCapabilities) surfaceConfig {
	cfg := surfaceConfig{
		format:      gputypes.TextureFormatBGRA8UnormSrgb,
		presentMode: gputypes.PresentModeFifo,
		alphaMode:   gputypes.CompositeAlphaModeOpaque,
	}
	if caps == nil {
		return cfg
	}
	if i := slices.IndexFunc(caps.Formats, gputypes.TextureFormat.IsSrgb); i >= 0 {
		cfg.format = caps.Formats[i]
	} else if len(caps.Formats) > 0 {
		cfg.format = caps.Formats[0]
	}
	if len(caps.PresentModes) > 0 {
		cfg.presentMode = caps.PresentModes[0]
	}
	if len(caps.AlphaModes) > 0 {
		cfg.alphaMode = caps.AlphaModes[0]
	}
	return cfg
}

// Surface presents the overlay into a window. It implements
// flashlight.Surface and backend.Surface.
type Surface struct {
	adapter *wgpu.Adapter
	device  *wgpu.Device
	surface *wgpu.Surface
	overlay *overlayPipeline
	config  surfaceConfig

	width  int
	height int
}

// Configure (re)creates the swapchain for a width by height window.
func (s *Surface) Configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: invalid surface size %dx%d", width, height)
	}
	err := s.surface.Configure(s.device, &wgpu.SurfaceConfiguration{
		Width:       uint32(width),
		Height:      uint32(height),
		Format:      s.config.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: s.config.presentMode,
		AlphaMode:   s.config.alphaMode,
	})
	if err != nil {
		return surfaceError("configure surface", err)
	}
	s.width, s.height = width, height
	flashlight.Logger().Info("wgpu: surface configured",
		"width", width, "height", height,
		"format", s.config.format, "presentMode", s.config.presentMode)
	return nil
}

// Acquire returns the next swapchain image as a frame target.
func (s *Surface) Acquire() (flashlight.Target, error) {
	tex, suboptimal, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, surfaceError("acquire", err)
	}
	if suboptimal {
		flashlight.Logger().Debug("wgpu: suboptimal swapchain image")
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		s.surface.DiscardTexture()
		return nil, surfaceError("create frame view", err)
	}
	return &frame{surface: s, texture: tex, view: view}, nil
}

// Release frees the overlay pipeline, the surface and the device.
func (s *Surface) Release() {
	if s.overlay != nil {
		s.overlay.release()
		s.overlay = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
}

// frame is one acquired swapchain image.
type frame struct {
	surface *Surface
	texture *wgpu.SurfaceTexture
	view    *wgpu.TextureView
	done    bool
}

func (f *frame) Upload(params flashlight.OverlayParams) error {
	if f.done {
		return errFrameDone
	}
	if err := f.surface.overlay.writeParams(params); err != nil {
		return surfaceError("write params", err)
	}
	return nil
}

func (f *frame) DrawQuad() error {
	if f.done {
		return errFrameDone
	}
	if err := f.surface.overlay.draw(f.view); err != nil {
		return surfaceError("draw", err)
	}
	return nil
}

func (f *frame) Present() error {
	if f.done {
		return errFrameDone
	}
	f.done = true
	f.view.Release()
	if err := f.surface.surface.Present(f.texture); err != nil {
		return surfaceError("present", err)
	}
	return nil
}

func (f *frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.view.Release()
	f.surface.surface.DiscardTexture()
}
