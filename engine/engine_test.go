package engine

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gles/engine/camera"
	"github.com/Carmen-Shannon/oxy-gles/engine/config"
	"github.com/Carmen-Shannon/oxy-gles/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
	"github.com/Carmen-Shannon/oxy-gles/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const effectDoc = `{
	"Id": "solid",
	"ToolName": "OxyMrfExporter",
	"LeftShiftBits": 16,
	"Passes": [{
		"Id": "color", "Target": 0, "ClearMode": 0, "ClearColor": [0, 0, 0, 0],
		"ModelType": 0, "ParticleCount": 0, "CullingMode": 0, "TextureType": 0,
		"BlendMode": 0, "DepthMask": 1, "DepthFunc": 0, "ColorMask": [1, 1, 1, 1],
		"VertexShader": "mesh", "FragmentShader": "%s",
		"Uniforms": [{"Name": "u_tint", "Priority": 0, "Values": [65536]}]
	}]
}`

type fakeWindow struct {
	mu       sync.Mutex
	device   *gputest.Device
	resize   func(width, height int)
	resume   func()
	presents int
}

func (w *fakeWindow) Device() gpu.Device                           { return w.device }
func (w *fakeWindow) Width() int                                   { return 320 }
func (w *fakeWindow) Height() int                                  { return 240 }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.resize = cb }
func (w *fakeWindow) SetResumeCallback(cb func())                  { w.resume = cb }
func (w *fakeWindow) ProcessMessages()                             {}

func (w *fakeWindow) Present() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.presents++
}

func newWindow() *fakeWindow {
	return &fakeWindow{device: gputest.NewDevice()}
}

// solidScene builds a scene drawing one two-polygon-map object with the "mesh_<fragment>" program.
func solidScene(t *testing.T, r renderer.Renderer, fragment string, options ...scene.SceneBuilderOption) (scene.Scene, uint32) {
	t.Helper()
	id, err := r.RegisterShader("mesh", fragment, "void main() {}", "void main() {}")
	require.NoError(t, err)
	effect, err := r.LoadMrf([]byte(fmt.Sprintf(effectDoc, fragment)), false)
	require.NoError(t, err)

	mesh := model.NewModel(r.Binder(), model.MeshData{
		Vertices: make([]model.Vertex, 3),
		Layers: []model.LayerData{{Name: "body", PolygonMaps: []model.PolygonMapData{
			{Name: "a", Texture: -1, Indices: []uint16{0, 1, 2}},
			{Name: "b", Texture: -1, Indices: []uint16{0, 2, 1}},
		}}},
	}, model.WithBounds([3]float32{-1, -1, -1}, [3]float32{1, 1, 1}))
	obj := game_object.NewGameObject(game_object.WithModel(mesh), game_object.WithEffect(effect),
		game_object.WithRotationSpeed(mgl32.Vec3{0, 1, 0}))

	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	options = append([]scene.SceneBuilderOption{scene.WithActive(true), scene.WithObjects(obj)}, options...)
	return scene.NewScene(fragment, cam, r, options...), r.Shaders().Program(id).Handle()
}

func programOrder(d *gputest.Device) []uint32 {
	var out []uint32
	for _, c := range d.Calls() {
		if c.Name == "UseProgram" {
			out = append(out, c.Args[0].(uint32))
		}
	}
	return out
}

func TestNewEngineRequiresSurface(t *testing.T) {
	assert.Panics(t, func() { NewEngine() })

	w := newWindow()
	e := NewEngine(WithWindow(w))
	assert.Same(t, w, e.Window())
	assert.Equal(t, 320, e.Renderer().Width())
	assert.NotNil(t, e.Loader())
	assert.NotNil(t, w.resize)
	assert.NotNil(t, w.resume)
}

func TestRenderFrameRunsScenesInZOrderAndFlushesOnce(t *testing.T) {
	w := newWindow()
	e := NewEngine(WithWindow(w))
	r := e.Renderer()

	front, frontProg := solidScene(t, r, "front")
	back, backProg := solidScene(t, r, "back")
	hidden, hiddenProg := solidScene(t, r, "hidden")
	hidden.SetActive(false)
	e.AddScene(10, front)
	e.AddScene(-5, back)
	e.AddScene(0, hidden)
	assert.Equal(t, -5, back.ZOrder())

	var callbackSaw int
	e.SetRenderCallback(func(float32) { callbackSaw = r.DrawCallPool().Next() })

	w.device.Reset()
	stats := e.RenderFrame(0.016)
	assert.Equal(t, 4, stats.DrawCalls)
	assert.Equal(t, 4, callbackSaw)
	assert.Equal(t, 4, w.device.Count("DrawElements"))
	assert.Equal(t, []uint32{backProg, frontProg}, programOrder(w.device))
	assert.NotContains(t, programOrder(w.device), hiddenProg)
	assert.Zero(t, r.DrawCallPool().Next())
	assert.Equal(t, stats, r.LastStats())
	assert.Equal(t, 1, w.presents)
}

func TestResizeAndResumeCallbacks(t *testing.T) {
	w := newWindow()
	e := NewEngine(WithWindow(w))
	s, _ := solidScene(t, e.Renderer(), "lit")
	e.AddScene(0, s)

	w.resize(640, 320)
	assert.Equal(t, float32(2), s.Camera().Aspect())
	assert.Equal(t, 320, e.Renderer().Width())

	w.resume()
	w.device.Reset()
	e.RenderFrame(0)
	assert.Equal(t, 640, e.Renderer().Width())
	assert.Positive(t, w.device.Count("Viewport"))
}

func TestTickUpdatesActiveScenes(t *testing.T) {
	e := NewEngine(WithWindow(newWindow()))
	s, _ := solidScene(t, e.Renderer(), "spin")
	e.AddScene(1, s)

	var ticks []float32
	e.SetTickCallback(func(dt float32) { ticks = append(ticks, dt) })
	e.Tick(0.5)
	assert.Equal(t, []float32{0.5}, ticks)
	assert.InDelta(t, 0.5, s.Objects()[0].Rotation()[1], 1e-6)

	s.SetActive(false)
	e.Tick(0.5)
	assert.InDelta(t, 0.5, s.Objects()[0].Rotation()[1], 1e-6)
}

func TestRenderFrameCompletesLoads(t *testing.T) {
	e := NewEngine(WithWindow(newWindow()))
	_, err := e.Renderer().RegisterShader("mesh", "async", "void main() {}", "void main() {}")
	require.NoError(t, err)

	e.Loader().Load("async", []byte(fmt.Sprintf(effectDoc, "async")))
	e.Loader().Wait()
	assert.Nil(t, e.Loader().Get("async"))
	e.RenderFrame(0)
	assert.NotNil(t, e.Loader().Get("async"))
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.TickRate = 30
	cfg.Engine.FrameLimit = 120
	cfg.Engine.Profiling = true
	cfg.Renderer.DrawCallCapacity = 12
	cfg.Renderer.ExhaustionPolicy = "fail"
	cfg.Renderer.ScreenWidth, cfg.Renderer.ScreenHeight = 100, 50

	e := NewEngine(WithWindow(newWindow()), WithConfig(cfg)).(*engine)
	assert.Equal(t, time.Second/30, e.engineTickRate)
	assert.Equal(t, time.Second/120, e.renderFrameLimit)
	assert.True(t, e.profilingEnabled.Load())
	assert.Equal(t, 12, e.Renderer().DrawCallPool().Cap())
	assert.Equal(t, target.PolicyFail, e.Renderer().Targets().Policy())
	assert.Equal(t, 100, e.Renderer().Width())

	e.DisableProfiler()
	assert.False(t, e.profilingEnabled.Load())
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	d := gputest.NewDevice()
	r := renderer.NewRenderer(nil, renderer.WithDevice(d), renderer.WithScreenSize(64, 64))
	e := NewEngine(WithRenderer(r), WithTickRate(200), WithRenderFrameLimit(500))
	assert.Nil(t, e.Window())

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	e.Quit()
	e.Quit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.Positive(t, d.Count("BindFramebuffer")+d.Count("Viewport"))
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine(WithWindow(newWindow()))
	s, _ := solidScene(t, e.Renderer(), "ui")
	e.AddScene(3, s)
	assert.Same(t, s, e.Scene(3))
	assert.Len(t, e.Scenes(), 1)
	e.RemoveScene(3)
	assert.Nil(t, e.Scene(3))
	assert.Empty(t, e.Scenes())
}
