package animator

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walk() Clip {
	return Clip{Name: "walk", Duration: 2, Frames: []Frame{
		{Time: 0, Palette: []mgl32.Mat4{mgl32.Translate3D(0, 0, 0), mgl32.Ident4()}},
		{Time: 1, Palette: []mgl32.Mat4{mgl32.Translate3D(1, 0, 0), mgl32.Ident4()}},
	}}
}

func newBoundQueue(t *testing.T) (queue.RenderQueue, *gputest.Device, uint32) {
	t.Helper()
	d := gputest.NewDevice()
	reg := shader.NewRegistry(d)
	b := binder.NewBinder(d, reg)
	id, err := reg.Register("skin", "lit", "void main() {}", "void main() {}")
	require.NoError(t, err)
	require.True(t, b.BindShaderProgram(id))
	return queue.NewRenderQueue(b), d, reg.Program(id).Handle()
}

func TestStaticBackend(t *testing.T) {
	a := NewAnimator(BackendTypeStatic, WithClips(walk()))
	assert.Equal(t, BackendTypeStatic, a.BackendType())
	assert.Equal(t, -1, a.AddClip(walk()))
	a.Advance(1)
	assert.Zero(t, a.Time())
	assert.Nil(t, a.Palette())

	q, d, prog := newBoundQueue(t)
	a.Bind(q)
	count, ok := d.UniformIntValue(prog, "u_boneCount")
	require.True(t, ok)
	assert.Equal(t, int32(0), count)
	assert.Zero(t, d.Count("UniformMatrices"))
}

func TestSkeletalPlayback(t *testing.T) {
	a := NewAnimator(BackendTypeSkeletal, WithBindPose([]mgl32.Mat4{mgl32.Scale3D(2, 2, 2)}), WithClips(walk()))
	assert.Equal(t, 1, a.BoneCount())
	assert.Equal(t, []mgl32.Mat4{mgl32.Scale3D(2, 2, 2)}, a.Palette())

	a.PlayAnimation(0, true)
	a.Advance(1.5)
	assert.InDelta(t, 1.5, a.Time(), 1e-6)
	assert.Equal(t, mgl32.Translate3D(1, 0, 0), a.Palette()[0])

	a.Advance(1)
	assert.InDelta(t, 0.5, a.Time(), 1e-6)
	assert.Equal(t, mgl32.Ident4(), a.Palette()[0])

	a.PlayAnimation(0, false)
	a.SetAnimationSpeed(2)
	a.Advance(5)
	assert.Equal(t, float32(2), a.Time())

	a.PlayAnimation(7, false)
	assert.Equal(t, []mgl32.Mat4{mgl32.Scale3D(2, 2, 2)}, a.Palette())
}

func TestSkeletalBindUploadsPalette(t *testing.T) {
	a := NewAnimator(BackendTypeSkeletal, WithClips(walk()))
	a.PlayAnimation(0, true)
	a.SetAnimationTime(1)

	q, d, prog := newBoundQueue(t)
	a.Bind(q)
	assert.Equal(t, walk().Frames[1].Palette, d.UniformMatrix(prog, "u_boneMatrices"))
	count, ok := d.UniformIntValue(prog, "u_boneCount")
	require.True(t, ok)
	assert.Equal(t, int32(2), count)
}

func TestBoneCountClamps(t *testing.T) {
	a := NewAnimator(BackendTypeSkeletal)
	a.SetBoneCount(MaxBones + 10)
	assert.Equal(t, MaxBones, a.BoneCount())
	a.SetBone(MaxBones+1, mgl32.Scale3D(3, 3, 3))
	a.SetBone(0, mgl32.Scale3D(3, 3, 3))
	assert.Equal(t, mgl32.Scale3D(3, 3, 3), a.Palette()[0])
	assert.Equal(t, mgl32.Ident4(), a.Palette()[1])
}
