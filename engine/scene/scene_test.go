package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/engine/camera"
	"github.com/Carmen-Shannon/oxy-gles/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gles/engine/light"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/drawcall"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flatDoc = `{
	"Id": "flat",
	"ToolName": "OxyMrfExporter",
	"LeftShiftBits": 16,
	"Passes": [{
		"Id": "color", "Target": 0, "ClearMode": 0, "ClearColor": [0, 0, 0, 0],
		"ModelType": 0, "ParticleCount": 0, "CullingMode": 1, "TextureType": 0,
		"BlendMode": 0, "DepthMask": 1, "DepthFunc": 0, "ColorMask": [1, 1, 1, 1],
		"VertexShader": "mesh", "FragmentShader": "flat",
		"Uniforms": [{"Name": "u_tint", "Priority": 0, "Values": [65536, 0, 0, 65536]}]
	}]
}`

type fixture struct {
	r      renderer.Renderer
	d      *gputest.Device
	effect *mrf.Mrf
	mesh   model.Model
	cam    camera.Camera
}

func newFixture(t *testing.T, options ...renderer.RendererBuilderOption) *fixture {
	t.Helper()
	d := gputest.NewDevice()
	options = append([]renderer.RendererBuilderOption{renderer.WithDevice(d), renderer.WithScreenSize(320, 240)}, options...)
	r := renderer.NewRenderer(nil, options...)
	_, err := r.RegisterShader("mesh", "flat", "void main() {}", "void main() {}")
	require.NoError(t, err)
	effect, err := r.LoadMrf([]byte(flatDoc), false)
	require.NoError(t, err)

	mesh := model.NewModel(r.Binder(), model.MeshData{
		Name:     "tile",
		Vertices: make([]model.Vertex, 3),
		Layers: []model.LayerData{{Name: "body", PolygonMaps: []model.PolygonMapData{
			{Name: "top", Texture: 5, Indices: []uint16{0, 1, 2}},
			{Name: "bottom", Texture: 6, Indices: []uint16{2, 1, 0}},
		}}},
	}, model.WithBounds([3]float32{-1, -1, -1}, [3]float32{1, 1, 1}))

	cam := camera.NewCamera(camera.WithController(camera.NewCameraController(camera.WithOrbit(10, 0, 0))))
	return &fixture{r: r, d: d, effect: effect, mesh: mesh, cam: cam}
}

func (f *fixture) object(options ...game_object.GameObjectBuilderOption) game_object.GameObject {
	return game_object.NewGameObject(append([]game_object.GameObjectBuilderOption{
		game_object.WithModel(f.mesh), game_object.WithEffect(f.effect),
	}, options...)...)
}

func TestNewScenePreconditions(t *testing.T) {
	f := newFixture(t)
	assert.Panics(t, func() { NewScene("s", nil, f.r) })
	assert.Panics(t, func() { NewScene("s", f.cam, nil) })

	s := NewScene("main", f.cam, f.r, WithActive(true), WithZOrder(2), WithObjects(f.object(), f.object()))
	assert.Equal(t, "main", s.Name())
	assert.True(t, s.Active())
	assert.Equal(t, 2, s.ZOrder())
	assert.Equal(t, 2, s.Count())
	assert.Same(t, f.r, s.Renderer())
	assert.Same(t, f.cam, s.Camera())
}

func TestRegistry(t *testing.T) {
	f := newFixture(t)
	s := NewScene("main", f.cam, f.r)

	a, b, c := f.object(), f.object(), f.object(game_object.WithID(40))
	idA, idB, idC := s.Add(a), s.Add(b), s.Add(c)
	assert.Equal(t, uint64(1), idA)
	assert.Equal(t, uint64(2), idB)
	assert.Equal(t, uint64(40), idC)
	assert.Same(t, b, s.Get(idB))

	s.Remove(idA)
	s.Remove(999)
	assert.Nil(t, s.Get(idA))
	assert.Equal(t, []game_object.GameObject{b, c}, s.Objects())

	s.Add(f.object(game_object.WithEphemeral()))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 1, s.CountEphemeral())

	s.Clear()
	assert.Zero(t, s.Count())
	assert.Zero(t, s.CountEphemeral())
	assert.Panics(t, func() { s.Add(game_object.NewGameObject()) })
}

func TestRegisterDrawCallsCullsAndSkips(t *testing.T) {
	f := newFixture(t)
	s := NewScene("main", f.cam, f.r)
	s.Add(f.object())
	s.Add(f.object(game_object.WithPosition(mgl32.Vec3{0, 0, 50})))
	s.Add(f.object(game_object.WithEnabled(false)))
	s.Add(game_object.NewGameObject(game_object.WithModel(f.mesh)))

	stats, err := s.RegisterDrawCalls()
	require.NoError(t, err)
	assert.Equal(t, FrameStats{Objects: 2, Culled: 1, DrawCalls: 2}, stats)
	assert.Equal(t, stats, s.LastStats())
	assert.Equal(t, 2, s.Queue().Len())
	assert.Equal(t, f.cam.ViewMatrix(), s.Queue().View())

	f.d.Reset()
	s.ExecRender()
	assert.Equal(t, 2, f.d.Count("DrawElements"))
	assert.Zero(t, s.Queue().Len())

	s.SetCullingDisabled(true)
	assert.True(t, s.CullingDisabled())
	stats, err = s.RegisterDrawCalls()
	require.NoError(t, err)
	assert.Equal(t, FrameStats{Objects: 2, DrawCalls: 4}, stats)
	s.ExecRender()
}

func TestEphemeralObjectsDrawOnce(t *testing.T) {
	f := newFixture(t)
	s := NewScene("fx", f.cam, f.r)
	s.Add(f.object(game_object.WithEphemeral()))

	stats, err := s.RegisterDrawCalls()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.DrawCalls)
	assert.Zero(t, s.CountEphemeral())
	s.ExecRender()

	stats, err = s.RegisterDrawCalls()
	require.NoError(t, err)
	assert.Zero(t, stats.DrawCalls)
}

func TestPoolExhaustionIsReported(t *testing.T) {
	f := newFixture(t, renderer.WithDrawCallCapacity(3))
	s := NewScene("main", f.cam, f.r, WithObjects(f.object(), f.object()))

	stats, err := s.RegisterDrawCalls()
	require.ErrorIs(t, err, drawcall.ErrPoolExhausted)
	assert.Equal(t, 3, stats.DrawCalls)
	assert.Equal(t, 3, s.Queue().Len())
	s.ExecRender()

	f.r.Flush()
	_, err = NewScene("next", f.cam, f.r, WithObjects(f.object())).RegisterDrawCalls()
	assert.NoError(t, err)
}

func TestUpdateAndResize(t *testing.T) {
	f := newFixture(t)
	s := NewScene("main", f.cam, f.r, WithUpdateWorkers(2))
	spinning := f.object(game_object.WithRotationSpeed(mgl32.Vec3{1, 0, 0}))
	frozen := f.object(game_object.WithRotationSpeed(mgl32.Vec3{1, 0, 0}), game_object.WithEnabled(false))
	s.Add(spinning)
	s.Add(frozen)

	s.Update(0.25)
	assert.InDelta(t, 0.25, spinning.Rotation()[0], 1e-6)
	assert.Zero(t, frozen.Rotation()[0])

	s.Resize(400, 200)
	assert.Equal(t, float32(2), s.Camera().Aspect())
	s.Resize(0, 10)
	assert.Equal(t, float32(2), s.Camera().Aspect())

	s.SetFog([3]float32{1, 1, 1}, 5, 25)
	assert.Equal(t, float32(25), s.Queue().Fog().Far)
}

func TestKeyLightFollowsFirstEnabledLight(t *testing.T) {
	f := newFixture(t)
	off := light.NewLight(light.LightTypePoint, light.WithEnabled(false))
	sun := light.NewLight(light.LightTypeDirectional, light.WithDirection(mgl32.Vec3{0, -1, 0}))
	s := NewScene("main", f.cam, f.r, WithLights(off, nil, sun))
	s.SetAmbient([3]float32{0.1, 0.1, 0.1})

	require.Len(t, s.Lights(), 2)
	_, err := s.RegisterDrawCalls()
	require.NoError(t, err)
	assert.Equal(t, sun.Uniform(), s.Queue().Light())
	assert.Equal(t, [3]float32{0.1, 0.1, 0.1}, s.Queue().Ambient())
	s.ExecRender()

	off.SetEnabled(true)
	_, err = s.RegisterDrawCalls()
	require.NoError(t, err)
	assert.Equal(t, off.Uniform(), s.Queue().Light())
	s.ExecRender()

	s.RemoveLight(off)
	s.RemoveLight(sun)
	assert.Empty(t, s.Lights())
	_, err = s.RegisterDrawCalls()
	require.NoError(t, err)
	assert.Equal(t, queue.Light{}, s.Queue().Light())
}
