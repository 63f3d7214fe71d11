package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
)

// Vertex is the interleaved vertex layout of every mesh. Bone indices are stored as floats
// because GLES 2.0 has no integer attributes.
// Size: 64 bytes.
type Vertex struct {
	Position    [3]float32 // offset  0
	Normal      [3]float32 // offset 12
	TexCoord    [2]float32 // offset 24
	BoneIndices [4]float32 // offset 32
	BoneWeights [4]float32 // offset 48
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 64

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the vertex into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, VertexStride)
	v.put(buf)
	return buf
}

func (v *Vertex) put(buf []byte) {
	fields := [...]float32{
		v.Position[0], v.Position[1], v.Position[2],
		v.Normal[0], v.Normal[1], v.Normal[2],
		v.TexCoord[0], v.TexCoord[1],
		v.BoneIndices[0], v.BoneIndices[1], v.BoneIndices[2], v.BoneIndices[3],
		v.BoneWeights[0], v.BoneWeights[1], v.BoneWeights[2], v.BoneWeights[3],
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}

// marshalVertices packs vertices back to back.
func marshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i := range vertices {
		vertices[i].put(buf[i*VertexStride:])
	}
	return buf
}

// marshalIndices packs 16-bit indices little-endian.
func marshalIndices(indices []uint16) []byte {
	buf := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// vertexLayout describes one attribute of Vertex within a shared buffer.
type vertexLayout struct {
	attrib     shader.Attrib
	components int
	offset     int
}

var vertexLayouts = [...]vertexLayout{
	{shader.AttribPosition, 3, 0},
	{shader.AttribNormal, 3, 12},
	{shader.AttribTexCoord, 2, 24},
	{shader.AttribBoneIndices, 4, 32},
	{shader.AttribBoneWeights, 4, 48},
}

// attribBuffers builds one VertexBuffer per attribute over the same GPU buffer.
func attribBuffers(handle uint32) [len(vertexLayouts)]*gpu.VertexBuffer {
	var out [len(vertexLayouts)]*gpu.VertexBuffer
	for i, l := range vertexLayouts {
		out[i] = &gpu.VertexBuffer{
			Handle:     handle,
			Components: l.components,
			Type:       gpu.Float,
			Stride:     VertexStride,
			Offset:     l.offset,
		}
	}
	return out
}
