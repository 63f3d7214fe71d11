package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func unitCube(t *testing.T) model.Model {
	t.Helper()
	d := gputest.NewDevice()
	b := binder.NewBinder(d, shader.NewRegistry(d))
	return model.NewModel(b, model.MeshData{Name: "cube"}, model.WithBounds([3]float32{-1, -1, -1}, [3]float32{1, 1, 1}))
}

func TestDefaults(t *testing.T) {
	g := NewGameObject()
	assert.True(t, g.Enabled())
	assert.False(t, g.Ephemeral())
	assert.Equal(t, mgl32.Ident4(), g.Transform())
	assert.Equal(t, common.BoundingBox{}, g.Bounds())

	p := g.Params()
	assert.Equal(t, mgl32.Ident4(), p.Transform)
	assert.Equal(t, int32(-1), p.Texture)
	assert.Nil(t, p.Player)
}

func TestTransformAndBounds(t *testing.T) {
	g := NewGameObject(
		WithModel(unitCube(t)),
		WithPosition(mgl32.Vec3{10, 0, 0}),
		WithScale(mgl32.Vec3{2, 1, 1}),
		WithTexture(4),
	)
	assert.Equal(t, common.ModelMatrix(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{2, 1, 1}), g.Transform())

	b := g.Bounds()
	assert.InDelta(t, 8, b[0], 1e-5)
	assert.InDelta(t, 12, b[3], 1e-5)
	assert.InDelta(t, -1, b[1], 1e-5)
	assert.Equal(t, int32(4), g.Params().Texture)
}

func TestUpdateAdvancesRotationAndAnimator(t *testing.T) {
	anim := animator.NewAnimator(animator.BackendTypeSkeletal, animator.WithClips(animator.Clip{Name: "idle", Duration: 10}))
	anim.PlayAnimation(0, true)
	g := NewGameObject(WithAnimator(anim), WithRotationSpeed(mgl32.Vec3{0, float32(math.Pi), 0}))

	g.Update(0.5)
	assert.InDelta(t, math.Pi/2, g.Rotation()[1], 1e-6)
	assert.InDelta(t, 0.5, anim.Time(), 1e-6)
	assert.Same(t, anim, g.Params().Player)
}

func TestSetters(t *testing.T) {
	g := NewGameObject(WithID(3), WithEnabled(false), WithEphemeral())
	assert.Equal(t, uint64(3), g.ID())
	assert.False(t, g.Enabled())
	assert.True(t, g.Ephemeral())

	g.SetID(4)
	g.SetEnabled(true)
	g.SetRotation(mgl32.Vec3{1, 2, 3})
	g.SetRotationSpeed(mgl32.Vec3{0, 1, 0})
	g.SetPosition(mgl32.Vec3{1, 1, 1})
	g.SetScale(mgl32.Vec3{3, 3, 3})
	g.SetTexture(11)
	assert.Equal(t, uint64(4), g.ID())
	assert.True(t, g.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, g.Rotation())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, g.RotationSpeed())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, g.Position())
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, g.Scale())
	assert.Equal(t, int32(11), g.Params().Texture)
	assert.Nil(t, g.Effect())
	assert.Nil(t, g.Model())
	assert.Nil(t, g.Animator())
}
