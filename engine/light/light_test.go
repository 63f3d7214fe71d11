package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypeDirectional)

	assert.Equal(t, LightTypeDirectional, l.Type())
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(10), l.Range())
	assert.True(t, l.Enabled())
}

func TestDirectionalUniform(t *testing.T) {
	l := NewLight(LightTypeDirectional,
		WithDirection(mgl32.Vec3{0, 0, -4}),
		WithColor(mgl32.Vec3{1, 0.5, 0}),
		WithIntensity(2),
	)

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, l.Direction())
	u := l.Uniform()
	assert.Equal(t, [4]float32{0, 0, 1, 0}, u.Position)
	assert.Equal(t, [3]float32{2, 1, 0}, u.Color)
}

func TestPointUniform(t *testing.T) {
	l := NewLight(LightTypePoint, WithPosition(mgl32.Vec3{1, 2, 3}), WithRange(7), WithEnabled(false))
	assert.False(t, l.Enabled())

	u := l.Uniform()
	assert.Equal(t, [4]float32{1, 2, 3, 1}, u.Position)
	assert.Equal(t, float32(7), u.Range)

	l.SetPosition(mgl32.Vec3{4, 5, 6})
	l.SetIntensity(0.5)
	l.SetEnabled(true)
	u = l.Uniform()
	assert.Equal(t, [4]float32{4, 5, 6, 1}, u.Position)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, u.Color)
	assert.True(t, l.Enabled())
}

func TestSetDirectionZero(t *testing.T) {
	l := NewLight(LightTypeDirectional)
	l.SetDirection(mgl32.Vec3{})
	assert.Equal(t, mgl32.Vec3{}, l.Direction())

	l.SetDirection(mgl32.Vec3{3, 0, 0})
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, l.Direction())
}
