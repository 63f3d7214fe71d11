package renderer

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	device gpu.Device
}

func (s fakeSurface) Device() gpu.Device { return s.device }
func (s fakeSurface) Width() int         { return 320 }
func (s fakeSurface) Height() int        { return 240 }

const fullScreenDoc = `{
	"Id": "blur",
	"ToolName": "OxyMrfExporter",
	"LeftShiftBits": 16,
	"Passes": [{
		"Id": "down", "Target": 3, "ClearMode": 1, "ClearColor": [0, 0, 0, 65536],
		"ModelType": 1, "ParticleCount": 0, "CullingMode": 3, "TextureType": 0,
		"BlendMode": 0, "DepthMask": 0, "DepthFunc": 8, "ColorMask": [1, 1, 1, 1],
		"VertexShader": "quad", "FragmentShader": "blur",
		"Uniforms": [{"Name": "u_radius_px", "Priority": 0, "Values": [131072]}]
	}]
}`

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) (Renderer, *gputest.Device) {
	t.Helper()
	d := gputest.NewDevice()
	return NewRenderer(fakeSurface{device: d}, options...), d
}

func TestNewRendererUsesSurface(t *testing.T) {
	r, d := newTestRenderer(t)
	assert.Same(t, d, r.Device())
	assert.Equal(t, 320, r.Width())
	assert.Equal(t, 240, r.Height())
	assert.Equal(t, common.Rect{Width: 320, Height: 240}, r.Binder().ScreenViewport())
	assert.Equal(t, common.Rect{Width: 80, Height: 60}, r.Targets().Framebuffer(target.TexTypeFBO1).Viewport)
	assert.Len(t, r.FboUsed(), target.Count)

	assert.Panics(t, func() { NewRenderer(nil) })
	assert.NotPanics(t, func() { NewRenderer(nil, WithDevice(gputest.NewDevice()), WithScreenSize(8, 8)) })
}

func TestRendererOptions(t *testing.T) {
	r, _ := newTestRenderer(t,
		WithDrawCallCapacity(3),
		WithMaxParticles(16),
		WithTargetOptions(target.WithGeneralDivisor(2), target.WithExhaustionPolicy(target.PolicyFail)),
	)
	assert.Equal(t, 3, r.DrawCallPool().Cap())
	assert.Equal(t, 16, r.Shapes().MaxParticles())
	assert.Equal(t, target.PolicyFail, r.Targets().Policy())
	assert.Equal(t, common.Rect{Width: 160, Height: 120}, r.Targets().Framebuffer(target.TexTypeFBO9).Viewport)
}

func TestFrameLifecycle(t *testing.T) {
	r, d := newTestRenderer(t)
	_, err := r.RegisterShader("quad", "blur", "void main() {}", "void main() {}")
	require.NoError(t, err)

	m, err := r.LoadMrf([]byte(fullScreenDoc), false)
	require.NoError(t, err)
	require.Equal(t, mrf.StateReady, m.State())

	q := r.NewRenderQueue()
	r.BeginFrame()
	n, err := m.RegisterDrawCalls(q, mrf.DefaultParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, r.FboUsed()[target.TexTypeFBO3])

	q.ExecRender()
	assert.Equal(t, 1, d.Count("Clear"))
	assert.Equal(t, 1, d.Count("DrawArrays"))

	stats := r.Flush()
	assert.Equal(t, 2, stats.DrawCalls)
	assert.Equal(t, 1, stats.TargetsUsed)
	assert.Positive(t, stats.Issued)
	assert.Equal(t, stats, r.LastStats())

	assert.Equal(t, 0, r.DrawCallPool().Next())
	assert.False(t, r.FboUsed()[target.TexTypeFBO3])
	assert.Zero(t, r.Binder().Stats().Issued)

	// the same effect draws into the same target every frame
	r.BeginFrame()
	calls, err := m.PrepareDrawCalls(mrf.DefaultParams(), nil)
	require.NoError(t, err)
	assert.Same(t, r.Targets().Framebuffer(target.TexTypeFBO3), calls[1].Framebuffer)
	r.Flush()
}

func TestLoadMrfReportsFailures(t *testing.T) {
	var logged []string
	r, _ := newTestRenderer(t, WithLogCallback(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}))

	m, err := r.LoadMrf([]byte(`{"ToolName": "Other", "LeftShiftBits": 16, "Passes": []}`), true)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, mrf.ErrToolName)
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "[Mrf]")

	m, err = r.LoadMrf([]byte(fullScreenDoc), true)
	require.NoError(t, err)
	assert.Equal(t, mrf.StateUniformsDeferred, m.State())
	require.NoError(t, m.SetUniforms())
	assert.Equal(t, -1, m.Program(0))

	_, err = r.RegisterShader("a", "b", "void main() {}", "#pragma oxy include missing\n")
	assert.Error(t, err)
	assert.Len(t, logged, 2)
}

func TestResizeAndResumeApplyAtBeginFrame(t *testing.T) {
	r, d := newTestRenderer(t)
	r.BeginFrame()
	r.Binder().SetCullMode(gpu.CullBack)

	r.Resize(640, 480)
	assert.Equal(t, 320, r.Width())
	assert.Equal(t, common.Rect{Width: 320, Height: 240}, r.Binder().CurrentViewport())

	r.BeginFrame()
	assert.Equal(t, 640, r.Width())
	assert.Equal(t, 480, r.Height())
	assert.Equal(t, common.Rect{Width: 640, Height: 480}, r.Binder().CurrentViewport())
	assert.Equal(t, common.Rect{Width: 80, Height: 60}, r.Targets().Framebuffer(target.TexTypeFBO1).Viewport)

	d.Reset()
	r.Binder().SetCullMode(gpu.CullBack)
	assert.Zero(t, d.Count("SetCullMode"))

	r.Resume()
	r.BeginFrame()
	r.Binder().SetCullMode(gpu.CullBack)
	assert.Equal(t, 1, d.Count("SetCullMode"))
}

func TestSetFBOTextureRebindsScreen(t *testing.T) {
	r, d := newTestRenderer(t)
	fb := r.CreateFBO(64, 64)
	r.SetFBOTexture(fb, r.NewTexture(64, 64), true)
	assert.NotZero(t, fb.Depth)
	assert.Equal(t, uint32(0), d.BoundFramebuffer())
	assert.Nil(t, r.Binder().CurrentFramebuffer())
}

func TestAcquireForwardsToPool(t *testing.T) {
	r, _ := newTestRenderer(t, WithDrawCallCapacity(4))
	_, err := r.AcquireFullScreen()
	require.NoError(t, err)
	_, err = r.AcquireParticles(2)
	require.NoError(t, err)
	_, err = r.AcquireBox(common.BoundingBox{})
	require.NoError(t, err)
	_, err = r.AcquireClear(gpu.ClearDepth, common.Color{})
	require.NoError(t, err)
	_, err = r.AcquirePolygonMap(nil)
	assert.Error(t, err)
	assert.Equal(t, 4, r.Flush().DrawCalls)
}
