package flashlight

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OverlayParamsSize is the size of the encoded parameter block. It follows
// the WGSL uniform layout of
//
//	struct Params {
//	    projection: mat4x4<f32>, // offset 0, 64 bytes
//	    mouse:      vec2<f32>,   // offset 64
//	    flashlight: u32,         // offset 72
//	    radius:     f32,         // offset 76
//	}
const OverlayParamsSize = 80

// OverlayParams is the per-frame input of the overlay shader. It is
// rebuilt every frame and never read back.
type OverlayParams struct {
	// Projection maps world coordinates to clip space. Column-major.
	Projection mgl32.Mat4
	// Cursor is the light center in window pixels, origin top-left.
	Cursor  mgl32.Vec2
	Enabled bool
	Radius  float32
}

// Bytes encodes p in the uniform layout, little-endian.
func (p OverlayParams) Bytes() []byte {
	return p.AppendBytes(make([]byte, 0, OverlayParamsSize))
}

// AppendBytes appends the encoded block to buf.
func (p OverlayParams) AppendBytes(buf []byte) []byte {
	for _, v := range p.Projection {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.Cursor[0]))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.Cursor[1]))
	var flag uint32
	if p.Enabled {
		flag = 1
	}
	buf = binary.LittleEndian.AppendUint32(buf, flag)
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.Radius))
	return buf
}

// Shading constants shared by every backend.
const (
	// ClearLevel is the linear gray drawn where the quad does not cover
	// the window.
	ClearLevel = 0.009

	// ShadowFactor scales linear color outside the light circle when the
	// flashlight is on.
	ShadowFactor = 0.2
)
