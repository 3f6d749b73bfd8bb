// Package backend provides the pluggable rendering backends of the
// flashlight overlay.
//
// A backend turns a window and the captured desktop image into a
// flashlight.Surface: something the Synchronizer can configure, acquire
// frames from, upload the parameter block to, draw the quad with, and
// present.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is registered on import of this package; the GPU
// backend registers itself when its package is imported:
//
//	import _ "github.com/gogpu/flashlight/backend/wgpu"
//
// # Backend Selection
//
// Use Default() to get the best available backend, Get() to request
// one by name, or Open() to do either and initialize it:
//
//	b, err := backend.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	surf, err := b.NewSurface(win, img)
//
// # Available Backends
//
// - "wgpu": GPU rendering via gogpu/wgpu (needs a NativeWindow)
// - "software": CPU rasterizer into an *image.RGBA (always available)
package backend
