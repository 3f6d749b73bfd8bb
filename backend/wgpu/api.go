package wgpu

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gogpu/wgpu"
)

// graphicsAPIEnv is read when SetGraphicsAPI was never called.
const graphicsAPIEnv = "GOGPU_GRAPHICS_API"

var (
	apiMu       sync.Mutex
	apiBackends *wgpu.Backends
)

// ParseGraphicsAPI maps a graphics API name to the wgpu backends mask.
// The empty string and "all" select every compiled-in backend.
func ParseGraphicsAPI(name string) (wgpu.Backends, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all", "auto":
		return wgpu.BackendsAll, nil
	case "vulkan", "vk":
		return wgpu.BackendsVulkan, nil
	case "gl", "gles", "opengl":
		return wgpu.BackendsGL, nil
	case "metal", "mtl":
		return wgpu.BackendsMetal, nil
	case "dx12", "d3d12":
		return wgpu.BackendsDX12, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAPI, name)
	}
}

// SetGraphicsAPI selects the graphics API for backends created afterwards.
func SetGraphicsAPI(name string) error {
	b, err := ParseGraphicsAPI(name)
	if err != nil {
		return err
	}
	apiMu.Lock()
	defer apiMu.Unlock()
	apiBackends = &b
	return nil
}

// graphicsAPI returns the selected backends mask. An unparsable
// environment value falls back to all backends.
func graphicsAPI() wgpu.Backends {
	apiMu.Lock()
	defer apiMu.Unlock()
	if apiBackends != nil {
		return *apiBackends
	}
	b, err := ParseGraphicsAPI(os.Getenv(graphicsAPIEnv))
	if err != nil {
		return wgpu.BackendsAll
	}
	return b
}
