// Package wgpu provides the GPU backend of the flashlight overlay using
// gogpu/wgpu.
//
// The backend creates a WebGPU surface on the overlay window, uploads the
// captured desktop once as an sRGB texture, and draws it every frame on a
// single indexed quad. The fragment shader dims everything outside a circle
// around the cursor when the flashlight is on.
//
// # Registration and Selection
//
// The backend registers itself as "wgpu" when this package is imported:
//
//	import _ "github.com/gogpu/flashlight/backend/wgpu"
//
// It is preferred over the software backend when both are available.
// The graphics API is chosen with SetGraphicsAPI, or the
// GOGPU_GRAPHICS_API environment variable when that was not called:
//
//	if err := wgpu.SetGraphicsAPI("vulkan"); err != nil {
//	    log.Fatal(err)
//	}
//	b, err := backend.Open(backend.BackendWGPU)
//
// # Bindings
//
// The overlay shader (shaders/overlay.wgsl) uses two bind groups:
//
//	@group(0) @binding(0)  uniform Params (80 bytes, flashlight.OverlayParams)
//	@group(1) @binding(0)  texture_2d<f32>  captured desktop
//	@group(1) @binding(1)  sampler          linear, clamp to edge
//
// The uniform size is checked against flashlight.OverlayParamsSize with
// naga before any pipeline is created.
//
// # Surface Errors
//
// Lost, outdated, timed out and out-of-memory conditions reported by wgpu
// are wrapped with the matching flashlight sentinel, so the Synchronizer
// can tell recoverable frames from fatal ones with errors.Is.
package wgpu
