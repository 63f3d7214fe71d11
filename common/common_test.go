package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDecodeFixed(t *testing.T) {
	assert.Equal(t, float32(1), DecodeFixed(65536, 16))
	assert.Equal(t, float32(0.5), DecodeFixed(32768, 16))
	assert.Equal(t, float32(-2), DecodeFixed(-8, 2))
}

func TestNearFar(t *testing.T) {
	near, far := NearFar(mgl32.Perspective(mgl32.DegToRad(60), 1, 0.5, 200))
	assert.InDelta(t, 0.5, near, 1e-4)
	assert.InDelta(t, 200, far, 0.5)

	near, far = NearFar(mgl32.Ortho(-1, 1, -1, 1, 2, 50))
	assert.InDelta(t, 2, near, 1e-4)
	assert.InDelta(t, 50, far, 1e-3)
}

func TestTransformBox(t *testing.T) {
	b := BoundingBox{-1, -1, -1, 1, 1, 1}
	out := TransformBox(ModelMatrix(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{2, 1, 1}), b)
	assert.Equal(t, BoundingBox{3, -1, -1, 7, 1, 1}, out)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, out.Center())
}

func TestFrustumIntersectsBox(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	f := ExtractFrustum(proj.Mul4(view))

	assert.True(t, f.IntersectsBox(BoundingBox{-1, -1, -1, 1, 1, 1}))
	assert.False(t, f.IntersectsBox(BoundingBox{50, -1, -1, 52, 1, 1}))
	assert.False(t, f.IntersectsBox(BoundingBox{-1, -1, 11, 1, 1, 12}))
}

func TestCoalesceAndClamp(t *testing.T) {
	assert.Equal(t, 7, Coalesce(0, 7, 9))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, 3, Clamp(9, 1, 3))
	assert.Equal(t, float32(1), Clamp(float32(-2), 1, 3))
	assert.Equal(t, int32(2), Clamp(int32(2), 1, 3))
}
