package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/flashlight"
)

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12, GL).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%v, %v)", g.Name, g.DeviceType, g.Backend)
}

func gpuInfo(adapter *wgpu.Adapter) *GPUInfo {
	info := adapter.Info()
	return &GPUInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}
}

// openDevice picks an adapter able to present to surface and creates a
// device on it.
func openDevice(instance *wgpu.Instance, surface *wgpu.Surface) (*wgpu.Adapter, *wgpu.Device, error) {
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
		CompatibleSurface: surface,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}

	info := gpuInfo(adapter)
	log := flashlight.Logger()
	log.Info("wgpu: adapter selected", "gpu", info.String())
	if info.Driver != "" {
		log.Debug("wgpu: driver", "version", info.Driver)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		return nil, nil, fmt.Errorf("request device: %w", err)
	}
	log.Debug("wgpu: device limits",
		"maxTextureDimension2D", device.Limits().MaxTextureDimension2D)
	return adapter, device, nil
}
