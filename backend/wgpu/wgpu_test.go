package wgpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/backend"
	"github.com/gogpu/flashlight/capture"
)

// =============================================================================
// Shader
// =============================================================================

func TestOverlayShaderValid(t *testing.T) {
	if err := checkOverlayShader(); err != nil {
		t.Fatalf("checkOverlayShader() = %v", err)
	}
}

func TestOverlayShaderUniformSpan(t *testing.T) {
	module, err := lowerShader(overlayShaderWGSL)
	if err != nil {
		t.Fatalf("lowerShader() = %v", err)
	}
	span, ok := uniformSpan(module, paramsGroup, 0)
	if !ok {
		t.Fatal("uniformSpan() found no uniform at group 0 binding 0")
	}
	if span != flashlight.OverlayParamsSize {
		t.Errorf("uniform span = %d, want %d", span, flashlight.OverlayParamsSize)
	}
	if _, ok := uniformSpan(module, captureGroup, 0); ok {
		t.Error("uniformSpan() reported a uniform at the texture binding")
	}
}

func TestValidateShaderRejectsLayoutDrift(t *testing.T) {
	// A padded radius grows the block past what OverlayParams encodes.
	drifted := strings.Replace(overlayShaderWGSL, "radius: f32,", "radius: f32,\n    extra: vec4<f32>,", 1)
	if drifted == overlayShaderWGSL {
		t.Fatal("test shader edit did not apply")
	}
	if err := validateShader(drifted); !errors.Is(err, ErrShaderLayout) {
		t.Errorf("validateShader(drifted) = %v, want ErrShaderLayout", err)
	}
}

func TestValidateShaderRejectsMissingEntryPoint(t *testing.T) {
	renamed := strings.Replace(overlayShaderWGSL, "fn fs_main", "fn fs_other", 1)
	if err := validateShader(renamed); err == nil || !strings.Contains(err.Error(), fragmentEntryPoint) {
		t.Errorf("validateShader(renamed) = %v, want missing %s", err, fragmentEntryPoint)
	}
}

func TestValidateShaderRejectsSyntaxError(t *testing.T) {
	if err := validateShader("fn broken( {"); err == nil {
		t.Error("validateShader(garbage) = nil, want error")
	}
}

// =============================================================================
// Errors
// =============================================================================

func TestSurfaceErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want flashlight.SurfaceErrorKind
	}{
		{"lost", wgpu.ErrSurfaceLost, flashlight.SurfaceErrorLost},
		{"outdated", wgpu.ErrSurfaceOutdated, flashlight.SurfaceErrorOutdated},
		{"timeout", wgpu.ErrTimeout, flashlight.SurfaceErrorTimeout},
		{"oom", wgpu.ErrOutOfMemory, flashlight.SurfaceErrorOutOfMemory},
		{"wrapped lost", fmt.Errorf("vulkan: %w", wgpu.ErrSurfaceLost), flashlight.SurfaceErrorLost},
		{"device lost", wgpu.ErrDeviceLost, flashlight.SurfaceErrorUnknown},
		{"other", errors.New("validation"), flashlight.SurfaceErrorUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := surfaceError("acquire", tt.err)
			if got := flashlight.ClassifySurfaceError(err); got != tt.want {
				t.Errorf("ClassifySurfaceError(surfaceError(%v)) = %v, want %v", tt.err, got, tt.want)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("surfaceError() = %v, lost the original error", err)
			}
			if !strings.HasPrefix(err.Error(), "acquire: ") {
				t.Errorf("surfaceError() = %q, want op prefix", err)
			}
		})
	}
}

// =============================================================================
// Graphics API selection
// =============================================================================

func TestParseGraphicsAPI(t *testing.T) {
	tests := []struct {
		in   string
		want wgpu.Backends
		err  bool
	}{
		{"", wgpu.BackendsAll, false},
		{"all", wgpu.BackendsAll, false},
		{"Vulkan", wgpu.BackendsVulkan, false},
		{" vk ", wgpu.BackendsVulkan, false},
		{"gles", wgpu.BackendsGL, false},
		{"metal", wgpu.BackendsMetal, false},
		{"d3d12", wgpu.BackendsDX12, false},
		{"glide", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseGraphicsAPI(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseGraphicsAPI(%q) error = %v, want error %v", tt.in, err, tt.err)
			continue
		}
		if tt.err {
			if !errors.Is(err, ErrUnknownAPI) {
				t.Errorf("ParseGraphicsAPI(%q) error = %v, want ErrUnknownAPI", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGraphicsAPI(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func resetGraphicsAPI(t *testing.T) {
	t.Helper()
	apiMu.Lock()
	saved := apiBackends
	apiBackends = nil
	apiMu.Unlock()
	t.Cleanup(func() {
		apiMu.Lock()
		apiBackends = saved
		apiMu.Unlock()
	})
}

func TestGraphicsAPISelection(t *testing.T) {
	resetGraphicsAPI(t)

	t.Setenv(graphicsAPIEnv, "gl")
	if got := graphicsAPI(); got != wgpu.BackendsGL {
		t.Errorf("graphicsAPI() from env = %v, want GL", got)
	}

	t.Setenv(graphicsAPIEnv, "bogus")
	if got := graphicsAPI(); got != wgpu.BackendsAll {
		t.Errorf("graphicsAPI() with bad env = %v, want all", got)
	}

	if err := SetGraphicsAPI("vulkan"); err != nil {
		t.Fatal(err)
	}
	if got := NewWGPUBackend().backends; got != wgpu.BackendsVulkan {
		t.Errorf("NewWGPUBackend().backends = %v, want Vulkan", got)
	}

	if err := SetGraphicsAPI("glide"); !errors.Is(err, ErrUnknownAPI) {
		t.Errorf("SetGraphicsAPI(glide) = %v, want ErrUnknownAPI", err)
	}
}

// =============================================================================
// Surface configuration
// =============================================================================

func TestChooseSurfaceConfig(t *testing.T) {
	tests := []struct {
		name string
		caps *wgpu.SurfaceCapabilities
		want surfaceConfig
	}{
		{
			name: "nil caps",
			caps: nil,
			want: surfaceConfig{
				format:      gputypes.TextureFormatBGRA8UnormSrgb,
				presentMode: gputypes.PresentModeFifo,
				alphaMode:   gputypes.CompositeAlphaModeOpaque,
			},
		},
		{
			name: "prefers srgb",
			caps: &wgpu.SurfaceCapabilities{
				Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb},
				PresentModes: []gputypes.PresentMode{gputypes.PresentModeMailbox, gputypes.PresentModeFifo},
				AlphaModes:   []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeAuto},
			},
			want: surfaceConfig{
				format:      gputypes.TextureFormatRGBA8UnormSrgb,
				presentMode: gputypes.PresentModeMailbox,
				alphaMode:   gputypes.CompositeAlphaModeAuto,
			},
		},
		{
			name: "no srgb",
			caps: &wgpu.SurfaceCapabilities{
				Formats: []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm},
			},
			want: surfaceConfig{
				format:      gputypes.TextureFormatBGRA8Unorm,
				presentMode: gputypes.PresentModeFifo,
				alphaMode:   gputypes.CompositeAlphaModeOpaque,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chooseSurfaceConfig(tt.caps); got != tt.want {
				t.Errorf("chooseSurfaceConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// Backend
// =============================================================================

func TestWGPUBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendWGPU) {
		t.Fatal("wgpu backend should be registered on import")
	}
	b := backend.Get(backend.BackendWGPU)
	if b == nil || b.Name() != "wgpu" {
		t.Fatalf("Get(wgpu) = %v, want wgpu backend", b)
	}
}

func TestNewSurfaceRequiresNativeWindow(t *testing.T) {
	b := NewWGPUBackend()
	img := &capture.Image{Width: 1, Height: 1, Pix: make([]byte, 4)}
	_, err := b.NewSurface(backend.FixedSize{Width: 10, Height: 10}, img)
	if !errors.Is(err, backend.ErrNoNativeHandle) {
		t.Errorf("NewSurface(FixedSize) = %v, want ErrNoNativeHandle", err)
	}
}

type handleWindow struct{ err error }

func (handleWindow) Size() (int, int) { return 10, 10 }

func (w handleWindow) NativeHandle() (uintptr, uintptr, error) { return 0, 0, w.err }

func TestNewSurfaceNotInitialized(t *testing.T) {
	b := NewWGPUBackend()
	img := &capture.Image{Width: 1, Height: 1, Pix: make([]byte, 4)}

	if _, err := b.NewSurface(handleWindow{}, img); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewSurface() before Init = %v, want ErrNotInitialized", err)
	}

	handleErr := errors.New("no x11 window")
	if _, err := b.NewSurface(handleWindow{err: handleErr}, img); !errors.Is(err, handleErr) {
		t.Errorf("NewSurface() with bad handle = %v, want %v", err, handleErr)
	}

	if _, err := b.NewSurface(handleWindow{}, &capture.Image{}); !errors.Is(err, capture.ErrEmpty) {
		t.Errorf("NewSurface(empty image) = %v, want capture.ErrEmpty", err)
	}
}

func TestGPUInfoString(t *testing.T) {
	info := &GPUInfo{Name: "Test GPU"}
	if got := info.String(); !strings.HasPrefix(got, "Test GPU (") {
		t.Errorf("String() = %q, want name first", got)
	}
}
