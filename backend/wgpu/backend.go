package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	// Registers the HAL backends available on this platform.
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/backend"
	"github.com/gogpu/flashlight/capture"
)

// init registers the wgpu backend and routes wgpu's own logging through
// the flashlight logger.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		return NewWGPUBackend()
	})
	flashlight.PropagateLogger(wgpu.SetLogger)
}

// WGPUBackend creates GPU surfaces for overlay windows.
//
// WGPUBackend is safe for concurrent use; the surfaces it creates are not
// and belong to the render loop goroutine.
type WGPUBackend struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	backends wgpu.Backends
}

// NewWGPUBackend creates an uninitialized backend using the graphics API
// selected by SetGraphicsAPI or GOGPU_GRAPHICS_API.
func NewWGPUBackend() *WGPUBackend {
	return &WGPUBackend{backends: graphicsAPI()}
}

// Name returns the backend identifier.
func (b *WGPUBackend) Name() string {
	return backend.BackendWGPU
}

// Init creates the wgpu instance.
func (b *WGPUBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.instance != nil {
		return nil
	}
	instance, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: b.backends,
		Flags:    gputypes.InstanceFlagsNone,
	})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	b.instance = instance
	return nil
}

// IsInitialized reports whether Init succeeded and Close was not called.
func (b *WGPUBackend) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.instance != nil
}

// Close releases the instance. Surfaces must be released first.
func (b *WGPUBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// NewSurface creates a GPU surface on win, which must implement
// backend.NativeWindow, and uploads img as the overlay texture.
func (b *WGPUBackend) NewSurface(win flashlight.Window, img *capture.Image) (backend.Surface, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	native, ok := win.(backend.NativeWindow)
	if !ok {
		return nil, backend.ErrNoNativeHandle
	}
	display, handle, err := native.NativeHandle()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrNoNativeHandle, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.instance == nil {
		return nil, ErrNotInitialized
	}

	raw, err := b.instance.CreateSurface(display, handle)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	s := &Surface{surface: raw}

	s.adapter, s.device, err = openDevice(b.instance, raw)
	if err != nil {
		s.Release()
		return nil, err
	}
	s.config = chooseSurfaceConfig(s.adapter.GetSurfaceCapabilities(raw))

	s.overlay, err = newOverlayPipeline(s.device, s.config.format, img)
	if err != nil {
		s.Release()
		return nil, err
	}

	w, h := win.Size()
	if err := s.Configure(w, h); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}
