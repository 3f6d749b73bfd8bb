package flashlight

import (
	"encoding/binary"
	"math"
)

// QuadIndexCount is the number of indices drawn per frame.
const QuadIndexCount = 6

// VertexStride is the encoded size of one Vertex.
const VertexStride = 16

// QuadIndices are the two counter-clockwise triangles of the quad.
var QuadIndices = [QuadIndexCount]uint16{0, 1, 2, 0, 2, 3}

// Vertex is a quad corner: world position then texture coordinate.
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
}

// Quad is the world-space rectangle the capture is drawn on.
type Quad struct {
	Vertices [4]Vertex
}

// NewQuad returns the quad covering (0,0)-(w,h) in world space.
//
// World y points up while the capture is stored top row first, so the
// bottom corners sample v = 1 and the top corners v = 0.
func NewQuad(w, h float32) Quad {
	return Quad{Vertices: [4]Vertex{
		{Position: [2]float32{0, 0}, TexCoord: [2]float32{0, 1}},
		{Position: [2]float32{w, 0}, TexCoord: [2]float32{1, 1}},
		{Position: [2]float32{w, h}, TexCoord: [2]float32{1, 0}},
		{Position: [2]float32{0, h}, TexCoord: [2]float32{0, 0}},
	}}
}

// VertexBytes encodes the vertices for a vertex buffer.
func (q Quad) VertexBytes() []byte {
	buf := make([]byte, 0, len(q.Vertices)*VertexStride)
	for _, v := range q.Vertices {
		for _, f := range [4]float32{v.Position[0], v.Position[1], v.TexCoord[0], v.TexCoord[1]} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// IndexBytes encodes QuadIndices as uint16 values. The result is padded to
// a multiple of four bytes as buffer writes require.
func IndexBytes() []byte {
	buf := make([]byte, 0, 16)
	for _, i := range QuadIndices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf
}
