package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestControllerOrbitPlacesEye(t *testing.T) {
	cc := NewCameraController(WithOrbit(5, 0, 0), WithTarget(mgl32.Vec3{1, 2, 3}))
	assert.True(t, cc.Position().ApproxEqual(mgl32.Vec3{1, 2, 8}))

	cc.Orbit(float32(math.Pi/2), 0)
	assert.True(t, cc.Position().ApproxEqualThreshold(mgl32.Vec3{6, 2, 3}, 1e-5))

	cc.Orbit(0, 10)
	assert.InDelta(t, math.Pi/2-0.1, cc.Elevation(), 1e-6)
}

func TestControllerZoomClamps(t *testing.T) {
	cc := NewCameraController(WithOrbit(5, 0, 0), WithRadiusBounds(2, 8), WithSpeeds(1, 1))
	cc.Zoom(10)
	assert.Equal(t, float32(2), cc.Radius())
	cc.Zoom(-100)
	assert.Equal(t, float32(8), cc.Radius())
	assert.InDelta(t, 8, cc.Position().Sub(cc.Target()).Len(), 1e-5)
}

func TestControllerPanKeepsOrbit(t *testing.T) {
	cc := NewCameraController(WithOrbit(4, 0, 0))
	before := cc.Position().Sub(cc.Target())

	cc.Pan(1, 0, 0)
	assert.True(t, cc.Target().ApproxEqual(mgl32.Vec3{1, 0, 0}))
	cc.Pan(0, 0, 2)
	assert.True(t, cc.Target().ApproxEqual(mgl32.Vec3{1, 0, -2}))
	assert.True(t, cc.Position().Sub(cc.Target()).ApproxEqual(before))
}

func TestCameraMatrices(t *testing.T) {
	cc := NewCameraController(WithOrbit(10, 0, 0))
	c := NewCamera(WithController(cc), WithAspect(2), WithClip(1, 50))

	assert.Equal(t, mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}), c.ViewMatrix())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 2, 1, 50), c.ProjectionMatrix())
	assert.Equal(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()), c.ViewProjectionMatrix())

	near, far := common.NearFar(c.ProjectionMatrix())
	assert.InDelta(t, 1, near, 1e-4)
	assert.InDelta(t, 50, far, 1e-2)

	cc.Zoom(2)
	c.Update()
	assert.Equal(t, mgl32.LookAtV(mgl32.Vec3{0, 0, 8}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}), c.ViewMatrix())
}

func TestCameraFrustumCulls(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithOrbit(10, 0, 0))))
	f := c.Frustum()
	assert.True(t, f.IntersectsBox(common.BoundingBox{-1, -1, -1, 1, 1, 1}))
	assert.False(t, f.IntersectsBox(common.BoundingBox{-1, -1, 20, 1, 1, 22}))
}

func TestOrthographicCamera(t *testing.T) {
	c := NewCamera(WithOrthographic(4), WithAspect(1.5), WithClip(0.5, 20))
	assert.Equal(t, ProjectionOrthographic, c.Projection())
	assert.Equal(t, mgl32.Ortho(-3, 3, -2, 2, 0.5, 20), c.ProjectionMatrix())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}

func TestApplySetsQueueMatrices(t *testing.T) {
	d := gputest.NewDevice()
	q := queue.NewRenderQueue(binder.NewBinder(d, shader.NewRegistry(d)))
	c := NewCamera(WithController(NewCameraController()), WithClip(2, 40))

	c.Apply(q)
	assert.Equal(t, c.ViewMatrix(), q.View())
	assert.Equal(t, c.ProjectionMatrix(), q.Projection())
	assert.InDelta(t, 2, q.Near(), 1e-3)
	assert.InDelta(t, 40, q.Far(), 1e-1)
}
