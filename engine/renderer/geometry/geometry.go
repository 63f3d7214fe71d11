// Package geometry holds the built-in shapes draw calls render when they do not draw a polygon
// map: a full-screen quad, a bounding box outline and a batch of particle quads.
package geometry

import (
	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
)

// DefaultMaxParticles is the particle capacity of the shared particle mesh.
const DefaultMaxParticles = 1024

// maxParticleQuads keeps quad indices inside the range of 16-bit indices.
const maxParticleQuads = 65536 / 4

// boxLineIndices are the 12 edges of a box whose corners follow BoundingBox.Corners ordering.
var boxLineIndices = []uint16{
	0, 1, 1, 3, 3, 2, 2, 0,
	4, 5, 5, 7, 7, 6, 6, 4,
	0, 4, 1, 5, 2, 6, 3, 7,
}

// Shapes owns the GPU buffers of the built-in shapes. Its draw methods bind the current
// program's attributes through the binder and issue one draw.
type Shapes struct {
	binder binder.Binder

	quadPosition *gpu.VertexBuffer
	quadTexCoord *gpu.VertexBuffer

	boxPosition *gpu.VertexBuffer
	boxIndices  *gpu.IndexBuffer

	particlePosition *gpu.VertexBuffer
	particleTexCoord *gpu.VertexBuffer
	particleIndices  *gpu.IndexBuffer
	maxParticles     int
}

// NewShapes creates the shared shape buffers. It must run on the GL thread.
//
// Parameters:
//   - b: the binder all uploads and binds go through
//   - options: functional options to configure the shapes
//
// Returns:
//   - *Shapes: the shapes
func NewShapes(b binder.Binder, options ...ShapesBuilderOption) *Shapes {
	if b == nil {
		panic("geometry: NewShapes requires a non-nil binder.Binder")
	}
	s := &Shapes{
		binder:       b,
		maxParticles: DefaultMaxParticles,
	}
	for _, opt := range options {
		opt(s)
	}
	s.maxParticles = common.Clamp(s.maxParticles, 1, maxParticleQuads)

	s.initQuad()
	s.initBox()
	s.initParticles()
	return s
}

func (s *Shapes) initQuad() {
	d := s.binder.Device()
	// x, y, u, v as a triangle strip
	data := []float32{
		-1, -1, 0, 0,
		1, -1, 1, 0,
		-1, 1, 0, 1,
		1, 1, 1, 1,
	}
	handle := d.CreateBuffer()
	s.quadPosition = &gpu.VertexBuffer{Handle: handle, Components: 2, Type: gpu.Float, Stride: 16}
	s.quadTexCoord = &gpu.VertexBuffer{Handle: handle, Components: 2, Type: gpu.Float, Stride: 16, Offset: 8}
	s.binder.UploadVertexData(s.quadPosition, common.SliceToBytes(data), gpu.StaticDraw)
}

func (s *Shapes) initBox() {
	d := s.binder.Device()
	s.boxPosition = &gpu.VertexBuffer{Handle: d.CreateBuffer(), Components: 3, Type: gpu.Float}
	s.binder.UploadVertexData(s.boxPosition, make([]byte, 8*3*4), gpu.DynamicDraw)

	s.boxIndices = &gpu.IndexBuffer{Handle: d.CreateBuffer(), Count: len(boxLineIndices), Type: gpu.UnsignedShort}
	s.binder.UploadIndexData(s.boxIndices, common.SliceToBytes(boxLineIndices), gpu.StaticDraw)
}

func (s *Shapes) initParticles() {
	d := s.binder.Device()
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	// x, y, particle index, u, v
	vertices := make([]float32, 0, s.maxParticles*4*5)
	indices := make([]uint16, 0, s.maxParticles*6)
	for i := range s.maxParticles {
		for c := range corners {
			vertices = append(vertices, corners[c][0], corners[c][1], float32(i), uvs[c][0], uvs[c][1])
		}
		base := uint16(i * 4)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	handle := d.CreateBuffer()
	s.particlePosition = &gpu.VertexBuffer{Handle: handle, Components: 3, Type: gpu.Float, Stride: 20}
	s.particleTexCoord = &gpu.VertexBuffer{Handle: handle, Components: 2, Type: gpu.Float, Stride: 20, Offset: 12}
	s.binder.UploadVertexData(s.particlePosition, common.SliceToBytes(vertices), gpu.StaticDraw)

	s.particleIndices = &gpu.IndexBuffer{Handle: d.CreateBuffer(), Count: len(indices), Type: gpu.UnsignedShort}
	s.binder.UploadIndexData(s.particleIndices, common.SliceToBytes(indices), gpu.StaticDraw)
}

// MaxParticles returns the particle capacity of DrawParticles.
func (s *Shapes) MaxParticles() int {
	return s.maxParticles
}

// DrawFullScreen draws a quad covering the bound framebuffer with the current program.
// Nothing is drawn when no program is bound.
func (s *Shapes) DrawFullScreen() {
	p := s.binder.CurrentProgram()
	if p == nil {
		return
	}
	s.binder.BindVertexBuffer(int(p.AttribLocation(shader.AttribPosition)), s.quadPosition)
	s.binder.BindVertexBuffer(int(p.AttribLocation(shader.AttribTexCoord)), s.quadTexCoord)
	s.binder.Device().DrawArrays(gpu.TriangleStrip, 0, 4)
}

// DrawBox draws the outline of box with the current program.
//
// Parameters:
//   - box: the box in model space
func (s *Shapes) DrawBox(box common.BoundingBox) {
	p := s.binder.CurrentProgram()
	if p == nil {
		return
	}
	corners := box.Corners()
	data := make([]float32, 0, len(corners)*3)
	for _, c := range corners {
		data = append(data, c[0], c[1], c[2])
	}
	s.binder.UploadVertexData(s.boxPosition, common.SliceToBytes(data), gpu.DynamicDraw)
	s.binder.BindVertexBuffer(int(p.AttribLocation(shader.AttribPosition)), s.boxPosition)
	s.binder.BindIndexBuffer(s.boxIndices)
	s.binder.Device().DrawElements(gpu.Lines, s.boxIndices.Count, s.boxIndices.Type, 0)
}

// DrawParticles draws count particle quads with the current program. The quad corner is in
// a_position.xy and the particle index in a_position.z. Counts above MaxParticles are clamped.
//
// Parameters:
//   - count: the number of particles
func (s *Shapes) DrawParticles(count int) {
	p := s.binder.CurrentProgram()
	if p == nil || count <= 0 {
		return
	}
	count = min(count, s.maxParticles)
	s.binder.BindVertexBuffer(int(p.AttribLocation(shader.AttribPosition)), s.particlePosition)
	s.binder.BindVertexBuffer(int(p.AttribLocation(shader.AttribTexCoord)), s.particleTexCoord)
	s.binder.BindIndexBuffer(s.particleIndices)
	s.binder.Device().DrawElements(gpu.Triangles, count*6, s.particleIndices.Type, 0)
}
