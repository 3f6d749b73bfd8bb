package backend

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/capture"
	"github.com/gogpu/flashlight/internal/parallel"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU rasterizer backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
)

var errNoParams = errors.New("backend: draw before upload")

// SoftwareBackend renders the overlay on the CPU into an *image.RGBA.
// It needs no window handles and works headless.
type SoftwareBackend struct {
	initialized bool
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() RenderBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// NewSurface creates a SoftwareSurface sized to win.
func (b *SoftwareBackend) NewSurface(win flashlight.Window, img *capture.Image) (Surface, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	s, err := NewSoftwareSurface(img)
	if err != nil {
		return nil, err
	}
	w, h := win.Size()
	if err := s.Configure(w, h); err != nil {
		return nil, err
	}
	return s, nil
}

// SoftwareSurface is a double-buffered CPU surface. DrawQuad rasterizes
// the overlay into the back buffer and Present swaps it to the front,
// where Frame reads it.
type SoftwareSurface struct {
	tex   *capture.Image
	quadW float32
	quadH float32

	back  *image.RGBA
	front *image.RGBA
	pool  *parallel.Pool
}

// NewSoftwareSurface creates an unconfigured surface drawing img.
func NewSoftwareSurface(img *capture.Image) (*SoftwareSurface, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return &SoftwareSurface{
		tex:   img,
		quadW: float32(img.Width),
		quadH: float32(img.Height),
	}, nil
}

// Configure allocates buffers for a width by height window.
func (s *SoftwareSurface) Configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("backend: invalid surface size %dx%d", width, height)
	}
	r := image.Rect(0, 0, width, height)
	s.back = image.NewRGBA(r)
	s.front = image.NewRGBA(r)
	if s.pool == nil {
		s.pool = parallel.NewPool(0)
	}
	return nil
}

// Acquire returns the back buffer as a frame target.
func (s *SoftwareSurface) Acquire() (flashlight.Target, error) {
	if s.back == nil {
		return nil, fmt.Errorf("backend: acquire before configure: %w", flashlight.ErrSurfaceOutdated)
	}
	return &softwareTarget{surface: s}, nil
}

// Frame returns the last presented frame.
func (s *SoftwareSurface) Frame() *image.RGBA { return s.front }

// Release stops the raster workers and drops the buffers.
func (s *SoftwareSurface) Release() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
	s.back, s.front = nil, nil
}

type softwareTarget struct {
	surface  *SoftwareSurface
	params   flashlight.OverlayParams
	uploaded bool
}

func (t *softwareTarget) Upload(params flashlight.OverlayParams) error {
	t.params = params
	t.uploaded = true
	return nil
}

func (t *softwareTarget) DrawQuad() error {
	if !t.uploaded {
		return errNoParams
	}
	t.surface.rasterize(t.params)
	return nil
}

func (t *softwareTarget) Present() error {
	s := t.surface
	s.back, s.front = s.front, s.back
	return nil
}

func (t *softwareTarget) Discard() {}

// rasterize shades every pixel of the back buffer the way the overlay
// shader does: nearest texel of the capture inside the quad, the clear
// color outside it, and the shadow outside the light circle.
func (s *SoftwareSurface) rasterize(p flashlight.OverlayParams) {
	dst := s.back
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	sw, sh := float32(w), float32(h)

	// The projection is affine, so the world position of each pixel
	// center is an origin plus whole steps in x and y.
	inv := p.Projection.Inv()
	origin := inv.Mul4x1(mgl32.Vec4{-1 + 1/sw, 1 - 1/sh, 0, 1})
	stepX := inv.Col(0).Mul(2 / sw)
	stepY := inv.Col(1).Mul(-2 / sh)

	r2 := p.Radius * p.Radius
	texW, texH := s.tex.Width, s.tex.Height

	shade := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := origin.Add(stepY.Mul(float32(y)))
			for x := 0; x < w; x++ {
				wp := row.Add(stepX.Mul(float32(x)))
				i := y*dst.Stride + x*4
				px := dst.Pix[i : i+4 : i+4]

				wx, wy := wp.X(), wp.Y()
				if wx < 0 || wy < 0 || wx >= s.quadW || wy >= s.quadH {
					px[0], px[1], px[2], px[3] = clearByte, clearByte, clearByte, 255
					continue
				}

				u := wx / s.quadW
				v := 1 - wy/s.quadH
				tx := min(int(u*float32(texW)), texW-1)
				ty := min(int(v*float32(texH)), texH-1)
				src := s.tex.Pix[(ty*texW+tx)*4:]

				lit := true
				if p.Enabled {
					dx := float32(x) + 0.5 - p.Cursor.X()
					dy := float32(y) + 0.5 - p.Cursor.Y()
					lit = dx*dx+dy*dy <= r2
				}
				if lit {
					px[0], px[1], px[2] = src[0], src[1], src[2]
				} else {
					px[0], px[1], px[2] = shadowLUT[src[0]], shadowLUT[src[1]], shadowLUT[src[2]]
				}
				px[3] = src[3]
			}
		}
	}

	s.pool.Rows(h, shade)
}

// Color math happens in linear space on an sRGB target, as on the GPU.
var (
	clearByte = srgbByte(flashlight.ClearLevel)
	shadowLUT = func() (lut [256]uint8) {
		for i := range lut {
			lut[i] = srgbByte(srgbToLinear(float64(i)/255) * flashlight.ShadowFactor)
		}
		return lut
	}()
)

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

func srgbByte(linear float64) uint8 {
	return uint8(math.Round(mgl64.Clamp(linearToSRGB(linear), 0, 1) * 255))
}
