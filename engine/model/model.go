// Package model is the renderable scene graph consumed by draw calls: an Object holds ordered
// Layers, a Layer holds ordered PolygonMaps, and a PolygonMap draws a range of triangles with
// one Surface.
package model

import (
	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
)

// Surface is the material side of a polygon map.
type Surface interface {
	// Texture returns the GPU texture name, or -1 for none.
	Texture() int32
}

// PolygonMap is a named group of triangles sharing one surface.
type PolygonMap interface {
	// Name returns the polygon map identifier.
	Name() string

	// Surface returns the polygon map's surface.
	Surface() Surface

	// BindSurface binds the vertex attributes the current program reads.
	//
	// Parameters:
	//   - q: the queue executing the draw call
	BindSurface(q queue.RenderQueue)

	// Render binds the index buffer and draws the triangles.
	//
	// Parameters:
	//   - q: the queue executing the draw call
	Render(q queue.RenderQueue)
}

// Layer is a named, ordered group of polygon maps.
type Layer interface {
	// Name returns the layer name matched by pass layer filters.
	Name() string

	// PolygonMaps returns the polygon maps in draw order.
	PolygonMaps() []PolygonMap
}

// Object is a renderable: ordered layers plus an aggregate bounding box.
type Object interface {
	// Layers returns the layers in draw order.
	Layers() []Layer

	// BoundingBox returns (minX, minY, minZ, maxX, maxY, maxZ) in render space.
	BoundingBox() common.BoundingBox
}

// Model is an Object backed by GPU buffers.
type Model interface {
	Object

	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Layer returns the first layer with the given name, or nil.
	//
	// Parameters:
	//   - name: the layer name
	//
	// Returns:
	//   - Layer: the layer or nil
	Layer(name string) Layer

	// VertexCount returns the number of uploaded vertices.
	VertexCount() int

	// IndexCount returns the number of uploaded indices across every polygon map.
	IndexCount() int

	// Release deletes the model's GPU buffers. It must run on the GL thread.
	Release()
}

// TextureSurface is a Surface holding a texture name.
type TextureSurface int32

// Texture returns the texture name.
func (s TextureSurface) Texture() int32 {
	return int32(s)
}

// model is the implementation of the Model interface.
type model struct {
	name   string
	binder binder.Binder

	vertexHandle uint32
	attribs      [len(vertexLayouts)]*gpu.VertexBuffer
	indices      *gpu.IndexBuffer

	vertexCount int
	layers      []Layer

	// boundsMin and boundsMax are file space; BoundingBox flips Z into render space.
	boundsMin, boundsMax [3]float32
}

var _ Model = &model{}

// layer is the implementation of the Layer interface.
type layer struct {
	name        string
	polygonMaps []PolygonMap
}

func (l *layer) Name() string {
	return l.name
}

func (l *layer) PolygonMaps() []PolygonMap {
	return l.polygonMaps
}

// polygonMap is the implementation of the PolygonMap interface.
type polygonMap struct {
	name    string
	surface Surface
	model   *model
	count   int
	offset  int
}

func (p *polygonMap) Name() string {
	return p.name
}

func (p *polygonMap) Surface() Surface {
	return p.surface
}

func (p *polygonMap) BindSurface(q queue.RenderQueue) {
	b := q.Binder()
	prog := b.CurrentProgram()
	if prog == nil {
		return
	}
	for i, l := range vertexLayouts {
		b.BindVertexBuffer(int(prog.AttribLocation(l.attrib)), p.model.attribs[i])
	}
}

func (p *polygonMap) Render(q queue.RenderQueue) {
	if p.count == 0 {
		return
	}
	b := q.Binder()
	b.BindIndexBuffer(p.model.indices)
	b.Device().DrawElements(gpu.Triangles, p.count, gpu.UnsignedShort, p.offset)
}

// NewModel uploads data and returns the Model. It must run on the GL thread.
//
// Parameters:
//   - b: the binder uploads go through
//   - data: the mesh data
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the uploaded model
func NewModel(b binder.Binder, data MeshData, options ...ModelBuilderOption) Model {
	if b == nil {
		panic("model: NewModel requires a non-nil binder.Binder")
	}
	m := &model{
		name:        data.Name,
		binder:      b,
		vertexCount: len(data.Vertices),
		boundsMin:   data.BoundingMin,
		boundsMax:   data.BoundingMax,
	}
	if m.boundsMin == ([3]float32{}) && m.boundsMax == ([3]float32{}) {
		m.boundsMin, m.boundsMax = computeBounds(data.Vertices)
	}
	for _, opt := range options {
		opt(m)
	}

	d := b.Device()
	m.vertexHandle = d.CreateBuffer()
	m.attribs = attribBuffers(m.vertexHandle)
	b.UploadVertexData(m.attribs[0], marshalVertices(data.Vertices), gpu.StaticDraw)

	var all []uint16
	for _, ld := range data.Layers {
		l := &layer{name: ld.Name}
		for _, pd := range ld.PolygonMaps {
			l.polygonMaps = append(l.polygonMaps, &polygonMap{
				name:    pd.Name,
				surface: TextureSurface(pd.Texture),
				model:   m,
				count:   len(pd.Indices),
				offset:  len(all) * 2,
			})
			all = append(all, pd.Indices...)
		}
		m.layers = append(m.layers, l)
	}
	m.indices = &gpu.IndexBuffer{Handle: d.CreateBuffer(), Count: len(all), Type: gpu.UnsignedShort}
	b.UploadIndexData(m.indices, marshalIndices(all), gpu.StaticDraw)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Layers() []Layer {
	return m.layers
}

func (m *model) Layer(name string) Layer {
	for _, l := range m.layers {
		if l.Name() == name {
			return l
		}
	}
	return nil
}

func (m *model) BoundingBox() common.BoundingBox {
	return common.BoundingBox{
		m.boundsMin[0], m.boundsMin[1], -m.boundsMax[2],
		m.boundsMax[0], m.boundsMax[1], -m.boundsMin[2],
	}
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexCount() int {
	return m.indices.Count
}

func (m *model) Release() {
	d := m.binder.Device()
	for slot := range binder.MaxVertexAttribs {
		m.binder.UnbindVertexBuffer(slot)
	}
	m.binder.UnbindIndexBuffer()
	d.DeleteBuffer(m.vertexHandle)
	d.DeleteBuffer(m.indices.Handle)
}
