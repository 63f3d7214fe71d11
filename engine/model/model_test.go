package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panel() MeshData {
	return MeshData{
		Name: "panel",
		Vertices: []Vertex{
			{Position: [3]float32{-1, -2, 1}},
			{Position: [3]float32{1, -2, 1}},
			{Position: [3]float32{1, 2, 3}},
			{Position: [3]float32{-1, 2, 3}},
		},
		Layers: []LayerData{
			{Name: "body", PolygonMaps: []PolygonMapData{
				{Name: "front", Texture: 7, Indices: []uint16{0, 1, 2, 2, 3, 0}},
				{Name: "edge", Texture: -1, Indices: []uint16{0, 1, 3}},
			}},
			{Name: "glass", PolygonMaps: []PolygonMapData{{Name: "empty", Texture: 9}}},
		},
	}
}

func newTestBinder() (binder.Binder, *gputest.Device, *shader.Registry) {
	d := gputest.NewDevice()
	reg := shader.NewRegistry(d)
	return binder.NewBinder(d, reg), d, reg
}

func TestNewModelUploads(t *testing.T) {
	b, d, _ := newTestBinder()
	m := NewModel(b, panel())

	assert.Equal(t, "panel", m.Name())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 9, m.IndexCount())
	assert.Equal(t, 2, d.Count("CreateBuffer"))
	assert.Equal(t, 2, d.Count("BufferData"))

	require.Len(t, m.Layers(), 2)
	body := m.Layer("body")
	require.NotNil(t, body)
	require.Len(t, body.PolygonMaps(), 2)
	assert.Equal(t, "edge", body.PolygonMaps()[1].Name())
	assert.Equal(t, int32(7), body.PolygonMaps()[0].Surface().Texture())
	assert.Equal(t, int32(-1), body.PolygonMaps()[1].Surface().Texture())
	assert.Nil(t, m.Layer("missing"))
}

func TestBoundingBoxFlipsZ(t *testing.T) {
	b, _, _ := newTestBinder()

	computed := NewModel(b, panel())
	assert.Equal(t, common.BoundingBox{-1, -2, -3, 1, 2, -1}, computed.BoundingBox())

	explicit := NewModel(b, panel(), WithName("crate"), WithBounds([3]float32{0, 0, -5}, [3]float32{1, 1, 2}))
	assert.Equal(t, "crate", explicit.Name())
	assert.Equal(t, common.BoundingBox{0, 0, -2, 1, 1, 5}, explicit.BoundingBox())
}

func TestPolygonMapRender(t *testing.T) {
	b, d, reg := newTestBinder()
	m := NewModel(b, panel())
	q := queue.NewRenderQueue(b)
	edge := m.Layer("body").PolygonMaps()[1]

	d.Reset()
	edge.BindSurface(q)
	assert.Zero(t, d.Count("VertexAttrib"))

	id, err := reg.Register("v", "f", "void main() {}", "void main() {}")
	require.NoError(t, err)
	require.True(t, b.BindShaderProgram(id))
	edge.BindSurface(q)
	assert.Equal(t, len(vertexLayouts), d.Count("VertexAttrib"))

	d.Reset()
	edge.Render(q)
	calls := d.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "DrawElements", calls[0].Name)
	assert.Equal(t, []any{gpu.Triangles, 3, gpu.UnsignedShort, 12}, calls[0].Args)

	m.Layer("glass").PolygonMaps()[0].Render(q)
	assert.Equal(t, 1, d.Count("DrawElements"))
}

func TestRelease(t *testing.T) {
	b, d, _ := newTestBinder()
	m := NewModel(b, panel())
	d.Reset()
	m.Release()
	assert.Equal(t, 2, d.Count("DeleteBuffer"))
	assert.Equal(t, 1, d.Count("BindIndexBuffer"))
}

func TestVertexMarshal(t *testing.T) {
	v := Vertex{Position: [3]float32{1, 2, 3}, BoneWeights: [4]float32{1, 0, 0, 0}}
	assert.Equal(t, VertexStride, v.Size())
	buf := v.Marshal()
	require.Len(t, buf, VertexStride)
	assert.Equal(t, common.SliceToBytes([]Vertex{v}), buf)
	assert.Len(t, marshalIndices([]uint16{1, 2, 3}), 6)
}
