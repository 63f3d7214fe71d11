// Package queue implements the render queue: the view and projection matrices, a model
// transform stack, fog and lighting settings and the ordered list of draw calls executed each frame.
package queue

import (
	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCapacity matches the default draw call pool capacity.
const DefaultCapacity = 4096

// Fog holds linear fog settings.
type Fog struct {
	Color     [3]float32
	Near, Far float32
}

// Params returns (near, far, far-near) as uploaded to u_fogParams.
func (f Fog) Params() [3]float32 {
	return [3]float32{f.Near, f.Far, f.Far - f.Near}
}

// Light is the key light as uploaded to the lighting builtins.
type Light struct {
	// Position is the direction towards the light with w = 0, or its position with w = 1.
	Position [4]float32
	// Color is premultiplied by the light intensity. Black disables the light.
	Color [3]float32
	// Range is the attenuation distance of a positional light.
	Range float32
}

// RenderQueue collects commands for one view and executes them in registration order.
// A queue lives across frames; ExecRender drains it every frame.
type RenderQueue interface {
	// Binder returns the binding cache commands go through.
	Binder() binder.Binder

	// Shapes returns the built-in shapes, or nil if the queue was built without them.
	Shapes() *geometry.Shapes

	// SetView sets the view matrix, the base of the model-view stack. Pushed model transforms
	// are kept and recomposed with the new view.
	SetView(m mgl32.Mat4)

	// View returns the view matrix.
	View() mgl32.Mat4

	// SetProjection sets the projection matrix and derives the near and far distances from it.
	SetProjection(m mgl32.Mat4)

	// Projection returns the projection matrix.
	Projection() mgl32.Mat4

	// Near returns the near clip distance of the projection.
	Near() float32

	// Far returns the far clip distance of the projection.
	Far() float32

	// SetFog stores the fog settings.
	//
	// Parameters:
	//   - color: the fog color
	//   - near: the distance fog starts at
	//   - far: the distance fog is opaque at
	SetFog(color [3]float32, near, far float32)

	// Fog returns the fog settings.
	Fog() Fog

	// SetLight stores the key light.
	SetLight(l Light)

	// Light returns the key light.
	Light() Light

	// SetAmbient stores the ambient color added by the lighting chunk.
	SetAmbient(color [3]float32)

	// Ambient returns the ambient color.
	Ambient() [3]float32

	// PushModel composes m onto the top of the model-view stack.
	PushModel(m mgl32.Mat4)

	// PopModel removes the top model transform. The view base is never popped.
	PopModel()

	// ModelView returns the top of the model-view stack.
	ModelView() mgl32.Mat4

	// Model returns the composed model transforms without the view.
	Model() mgl32.Mat4

	// ModelViewProjection returns Projection * ModelView.
	ModelViewProjection() mgl32.Mat4

	// ViewProjection returns Projection * View.
	ViewProjection() mgl32.Mat4

	// BindBuiltinUniforms uploads the matrix, fog, lighting and viewport builtins p declares.
	BindBuiltinUniforms(p *shader.Program)

	// RegisterDrawCall appends cmd to the render list.
	//
	// Returns:
	//   - error: ErrListFull past the list capacity
	RegisterDrawCall(cmd Command) error

	// Len returns the number of registered commands.
	Len() int

	// ExecRender resets the matrix stack to the view, executes every registered command in
	// registration order and empties the list.
	ExecRender()
}

// renderQueue is the implementation of the RenderQueue interface.
type renderQueue struct {
	binder binder.Binder
	shapes *geometry.Shapes
	list   *RenderList

	capacity int

	view       mgl32.Mat4
	projection mgl32.Mat4
	near, far  float32
	fog        Fog
	light      Light
	ambient    [3]float32

	modelView []mgl32.Mat4
	model     []mgl32.Mat4
}

var _ RenderQueue = &renderQueue{}

// NewRenderQueue creates a queue issuing its work through b.
//
// Parameters:
//   - b: the binding cache
//   - options: functional options to configure the queue
//
// Returns:
//   - RenderQueue: the queue
func NewRenderQueue(b binder.Binder, options ...RenderQueueBuilderOption) RenderQueue {
	if b == nil {
		panic("queue: NewRenderQueue requires a non-nil binder.Binder")
	}
	q := &renderQueue{
		binder:     b,
		capacity:   DefaultCapacity,
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		modelView:  make([]mgl32.Mat4, 0, 16),
		model:      make([]mgl32.Mat4, 0, 16),
	}
	for _, opt := range options {
		opt(q)
	}
	q.list = NewRenderList(q.capacity)
	q.near, q.far = common.NearFar(q.projection)
	q.resetStack()
	return q
}

func (q *renderQueue) Binder() binder.Binder {
	return q.binder
}

func (q *renderQueue) Shapes() *geometry.Shapes {
	return q.shapes
}

func (q *renderQueue) SetView(m mgl32.Mat4) {
	q.view = m
	for i := range q.modelView {
		q.modelView[i] = m.Mul4(q.model[i])
	}
}

func (q *renderQueue) View() mgl32.Mat4 {
	return q.view
}

func (q *renderQueue) SetProjection(m mgl32.Mat4) {
	q.projection = m
	q.near, q.far = common.NearFar(m)
}

func (q *renderQueue) Projection() mgl32.Mat4 {
	return q.projection
}

func (q *renderQueue) Near() float32 {
	return q.near
}

func (q *renderQueue) Far() float32 {
	return q.far
}

func (q *renderQueue) SetFog(color [3]float32, near, far float32) {
	q.fog = Fog{Color: color, Near: near, Far: far}
}

func (q *renderQueue) Fog() Fog {
	return q.fog
}

func (q *renderQueue) SetLight(l Light) {
	q.light = l
}

func (q *renderQueue) Light() Light {
	return q.light
}

func (q *renderQueue) SetAmbient(color [3]float32) {
	q.ambient = color
}

func (q *renderQueue) Ambient() [3]float32 {
	return q.ambient
}

func (q *renderQueue) resetStack() {
	q.modelView = append(q.modelView[:0], q.view)
	q.model = append(q.model[:0], mgl32.Ident4())
}

func (q *renderQueue) PushModel(m mgl32.Mat4) {
	q.modelView = append(q.modelView, q.modelView[len(q.modelView)-1].Mul4(m))
	q.model = append(q.model, q.model[len(q.model)-1].Mul4(m))
}

func (q *renderQueue) PopModel() {
	if len(q.modelView) > 1 {
		q.modelView = q.modelView[:len(q.modelView)-1]
		q.model = q.model[:len(q.model)-1]
	}
}

func (q *renderQueue) ModelView() mgl32.Mat4 {
	return q.modelView[len(q.modelView)-1]
}

func (q *renderQueue) Model() mgl32.Mat4 {
	return q.model[len(q.model)-1]
}

func (q *renderQueue) ModelViewProjection() mgl32.Mat4 {
	return q.projection.Mul4(q.ModelView())
}

func (q *renderQueue) ViewProjection() mgl32.Mat4 {
	return q.projection.Mul4(q.view)
}

func (q *renderQueue) BindBuiltinUniforms(p *shader.Program) {
	if p == nil {
		return
	}
	d := q.binder.Device()
	if loc := p.Location(shader.UniformModelViewProjection); loc >= 0 {
		d.UniformMatrices(loc, []mgl32.Mat4{q.ModelViewProjection()})
	}
	if loc := p.Location(shader.UniformModelView); loc >= 0 {
		d.UniformMatrices(loc, []mgl32.Mat4{q.ModelView()})
	}
	if loc := p.Location(shader.UniformModel); loc >= 0 {
		d.UniformMatrices(loc, []mgl32.Mat4{q.Model()})
	}
	if loc := p.Location(shader.UniformFogColor); loc >= 0 {
		d.UniformFloats(loc, q.fog.Color[:])
	}
	if loc := p.Location(shader.UniformFogParams); loc >= 0 {
		params := q.fog.Params()
		d.UniformFloats(loc, params[:])
	}
	if loc := p.Location(shader.UniformLightPosition); loc >= 0 {
		d.UniformFloats(loc, q.light.Position[:])
	}
	if loc := p.Location(shader.UniformLightColor); loc >= 0 {
		d.UniformFloats(loc, q.light.Color[:])
	}
	if loc := p.Location(shader.UniformLightRange); loc >= 0 {
		d.UniformFloats(loc, []float32{q.light.Range})
	}
	if loc := p.Location(shader.UniformAmbient); loc >= 0 {
		d.UniformFloats(loc, q.ambient[:])
	}
	if loc := p.Location(shader.UniformViewport); loc >= 0 {
		vp := q.binder.CurrentViewport()
		if !vp.Empty() {
			w, h := float32(vp.Width), float32(vp.Height)
			d.UniformFloats(loc, []float32{w, h, 1 / w, 1 / h})
		}
	}
}

func (q *renderQueue) RegisterDrawCall(cmd Command) error {
	return q.list.Register(cmd)
}

func (q *renderQueue) Len() int {
	return q.list.Len()
}

func (q *renderQueue) ExecRender() {
	q.resetStack()
	q.list.ExecRender(q)
}
