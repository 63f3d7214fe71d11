package queue

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stampCommand struct {
	order *[]int
	id    int
	seen  mgl32.Mat4
}

func (c *stampCommand) Execute(q RenderQueue) {
	*c.order = append(*c.order, c.id)
	c.seen = q.ModelView()
}

func newTestQueue(t *testing.T, options ...RenderQueueBuilderOption) (RenderQueue, *gputest.Device, *shader.Registry) {
	t.Helper()
	d := gputest.NewDevice()
	reg := shader.NewRegistry(d)
	return NewRenderQueue(binder.NewBinder(d, reg), options...), d, reg
}

func TestExecRenderFIFO(t *testing.T) {
	q, _, _ := newTestQueue(t)
	var order []int
	for i := range 10 {
		require.NoError(t, q.RegisterDrawCall(&stampCommand{order: &order, id: i}))
	}
	assert.Equal(t, 10, q.Len())

	q.ExecRender()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	assert.Equal(t, 0, q.Len())

	q.ExecRender()
	assert.Len(t, order, 10)
}

func TestRegisterDrawCallCapacity(t *testing.T) {
	q, _, _ := newTestQueue(t, WithCapacity(2))
	var order []int

	require.NoError(t, q.RegisterDrawCall(&stampCommand{order: &order}))
	require.NoError(t, q.RegisterDrawCall(&stampCommand{order: &order}))
	assert.ErrorIs(t, q.RegisterDrawCall(&stampCommand{order: &order}), ErrListFull)

	q.ExecRender()
	assert.NoError(t, q.RegisterDrawCall(&stampCommand{order: &order}))
}

func TestExecRenderResetsStackToView(t *testing.T) {
	view := mgl32.Translate3D(0, 0, -5)
	q, _, _ := newTestQueue(t, WithView(view))
	q.PushModel(mgl32.Translate3D(1, 0, 0))
	q.PushModel(mgl32.Translate3D(1, 0, 0))

	var order []int
	cmd := &stampCommand{order: &order}
	require.NoError(t, q.RegisterDrawCall(cmd))
	q.ExecRender()
	assert.Equal(t, view, cmd.seen)
}

func TestMatrixStack(t *testing.T) {
	view := mgl32.Translate3D(0, 0, -5)
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.5, 100)
	q, _, _ := newTestQueue(t, WithView(view), WithProjection(proj))

	assert.InDelta(t, 0.5, q.Near(), 1e-4)
	assert.InDelta(t, 100, q.Far(), 1e-2)
	assert.Equal(t, view, q.ModelView())
	assert.Equal(t, mgl32.Ident4(), q.Model())

	a := mgl32.Translate3D(1, 2, 3)
	b := mgl32.Scale3D(2, 2, 2)
	q.PushModel(a)
	q.PushModel(b)
	assert.True(t, view.Mul4(a).Mul4(b).ApproxEqual(q.ModelView()))
	assert.True(t, a.Mul4(b).ApproxEqual(q.Model()))
	assert.True(t, proj.Mul4(view).Mul4(a).Mul4(b).ApproxEqual(q.ModelViewProjection()))
	assert.True(t, proj.Mul4(view).ApproxEqual(q.ViewProjection()))

	q.PopModel()
	q.PopModel()
	q.PopModel()
	assert.Equal(t, view, q.ModelView())

	ortho := mgl32.Ortho(-1, 1, -1, 1, 2, 50)
	q.SetProjection(ortho)
	assert.InDelta(t, 2, q.Near(), 1e-4)
	assert.InDelta(t, 50, q.Far(), 1e-3)
}

func TestSetViewRecomposesPushedModels(t *testing.T) {
	q, _, _ := newTestQueue(t)
	a := mgl32.Translate3D(1, 2, 3)
	q.PushModel(a)

	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	q.SetView(view)
	assert.True(t, view.Mul4(a).ApproxEqual(q.ModelView()))
	assert.Equal(t, a, q.Model())

	q.PopModel()
	assert.Equal(t, view, q.ModelView())
}

func TestBindBuiltinUniforms(t *testing.T) {
	q, d, reg := newTestQueue(t)
	id, err := reg.Register("v", "f", "void main() {}", "void main() {}")
	require.NoError(t, err)
	p := reg.Program(id)

	q.SetFog([3]float32{0.1, 0.2, 0.3}, 10, 40)
	q.SetLight(Light{Position: [4]float32{0, 1, 0, 0}, Color: [3]float32{2, 2, 2}, Range: 5})
	q.SetAmbient([3]float32{0.25, 0.25, 0.25})
	q.Binder().SetViewport(common.Rect{Width: 200, Height: 100})
	q.PushModel(mgl32.Translate3D(1, 0, 0))
	q.BindBuiltinUniforms(p)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, d.UniformValue(p.Handle(), "u_fogColor"))
	assert.Equal(t, []float32{10, 40, 30}, d.UniformValue(p.Handle(), "u_fogParams"))
	assert.Equal(t, []float32{0, 1, 0, 0}, d.UniformValue(p.Handle(), "u_lightPosition"))
	assert.Equal(t, []float32{2, 2, 2}, d.UniformValue(p.Handle(), "u_lightColor"))
	assert.Equal(t, []float32{5}, d.UniformValue(p.Handle(), "u_lightRange"))
	assert.Equal(t, []float32{0.25, 0.25, 0.25}, d.UniformValue(p.Handle(), "u_ambient"))
	assert.Equal(t, []float32{200, 100, 0.005, 0.01}, d.UniformValue(p.Handle(), "u_viewport"))
	require.Len(t, d.UniformMatrix(p.Handle(), "u_model"), 1)
	assert.Equal(t, mgl32.Translate3D(1, 0, 0), d.UniformMatrix(p.Handle(), "u_model")[0])

	assert.NotPanics(t, func() { q.BindBuiltinUniforms(nil) })
}
