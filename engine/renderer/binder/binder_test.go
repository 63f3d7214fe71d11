package binder

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBinder(t *testing.T, options ...BinderBuilderOption) (Binder, *gputest.Device, int) {
	t.Helper()
	d := gputest.NewDevice()
	reg := shader.NewRegistry(d)
	id, err := reg.Register("v", "f", "void main() {}", "void main() {}")
	require.NoError(t, err)
	d.Reset()
	return NewBinder(d, reg, options...), d, id
}

func TestDedupPerCategory(t *testing.T) {
	b, d, prog := newTestBinder(t)
	vb := &gpu.VertexBuffer{Handle: 3, Components: 3}
	ib := &gpu.IndexBuffer{Handle: 4, Count: 6, Type: gpu.UnsignedShort}

	steps := []struct {
		name   string
		method string
		call   func()
	}{
		{"vertex", "VertexAttrib", func() { b.BindVertexBuffer(0, vb) }},
		{"index", "BindIndexBuffer", func() { b.BindIndexBuffer(ib) }},
		{"texture", "BindTexture", func() { b.BindTexture(9) }},
		{"program", "UseProgram", func() { assert.True(t, b.BindShaderProgram(prog)) }},
		{"blend enable", "SetBlendEnabled", func() { b.SetBlendEnable(true) }},
		{"blend func", "BlendFunc", func() { b.SetBlendFunc(gpu.FactorSrcAlpha, gpu.FactorOne) }},
		{"blend equation", "BlendEquation", func() { b.SetBlendEquation(gpu.EquationSubtract) }},
		{"cull", "SetCullMode", func() { b.SetCullMode(gpu.CullFront) }},
		{"depth mask", "DepthMask", func() { b.SetDepthMask(false) }},
		{"color mask", "ColorMask", func() { b.SetColorMask(true, false, true, false) }},
		{"viewport", "Viewport", func() { b.SetViewport(common.Rect{Width: 64, Height: 32}) }},
	}

	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			s.call()
			s.call()
			assert.Equal(t, 1, d.Count(s.method))
		})
	}

	b.ForceResyncAll()
	for _, s := range steps {
		t.Run(s.name+" after resync", func(t *testing.T) {
			s.call()
			s.call()
			assert.Equal(t, 2, d.Count(s.method))
		})
	}
}

func TestDepthTestReenableReappliesFunction(t *testing.T) {
	b, d, _ := newTestBinder(t)

	b.SetDepthTest(true, gpu.DepthLess)
	b.SetDepthTest(true, gpu.DepthLess)
	assert.Equal(t, 1, d.Count("SetDepthTestEnabled"))
	assert.Equal(t, 1, d.Count("DepthFunc"))

	b.SetDepthTest(false, gpu.DepthLess)
	assert.Equal(t, 2, d.Count("SetDepthTestEnabled"))
	assert.Equal(t, 1, d.Count("DepthFunc"))

	b.SetDepthTest(true, gpu.DepthLess)
	assert.Equal(t, 3, d.Count("SetDepthTestEnabled"))
	assert.Equal(t, 2, d.Count("DepthFunc"))

	b.SetDepthTest(true, gpu.DepthGreater)
	assert.Equal(t, 3, d.Count("SetDepthTestEnabled"))
	assert.Equal(t, 3, d.Count("DepthFunc"))
}

func TestBlendModeDecomposition(t *testing.T) {
	b, d, _ := newTestBinder(t)

	b.SetBlendMode(true, gpu.BlendAlpha)
	assert.Equal(t, 1, d.Count("SetBlendEnabled"))
	assert.Equal(t, 1, d.Count("BlendFunc"))
	assert.Equal(t, 1, d.Count("BlendEquation"))

	// additive shares the equation with alpha
	b.SetBlendMode(true, gpu.BlendAdditive)
	assert.Equal(t, 1, d.Count("SetBlendEnabled"))
	assert.Equal(t, 2, d.Count("BlendFunc"))
	assert.Equal(t, 1, d.Count("BlendEquation"))

	b.SetBlendMode(true, gpu.BlendDefault)
	assert.Equal(t, 2, d.Count("SetBlendEnabled"))

	b.SetBlendMode(false, gpu.BlendMode(42))
	assert.Equal(t, 2, d.Count("SetBlendEnabled"))
	assert.Equal(t, 2, d.Count("BlendFunc"))
}

func TestCullDefaultIsBack(t *testing.T) {
	b, d, _ := newTestBinder(t)

	b.SetCullMode(gpu.CullBack)
	b.SetCullMode(gpu.CullDefault)
	assert.Equal(t, 1, d.Count("SetCullMode"))

	calls := d.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, gpu.CullBack, calls[len(calls)-1].Args[0])
}

func TestBindShaderProgramUnknown(t *testing.T) {
	b, d, prog := newTestBinder(t)

	require.True(t, b.BindShaderProgram(prog))
	assert.False(t, b.BindShaderProgram(-1))
	assert.False(t, b.BindShaderProgram(99))
	assert.Equal(t, prog, b.GetCurrentProgramId())
	assert.Equal(t, 1, d.Count("UseProgram"))

	b.ResetShaderProgramCacheOnly()
	assert.Equal(t, -1, b.GetCurrentProgramId())
	assert.Nil(t, b.CurrentProgram())
	assert.Equal(t, 1, d.Count("UseProgram"))
	require.True(t, b.BindShaderProgram(prog))
	assert.Equal(t, 2, d.Count("UseProgram"))
}

func TestTextureNoneAndCacheReset(t *testing.T) {
	b, d, _ := newTestBinder(t)

	b.BindTexture(-1)
	b.UnbindTexture()
	b.BindTexture(-7)
	assert.Equal(t, 1, d.Count("BindTexture"))
	assert.Equal(t, uint32(0), d.Calls()[0].Args[0])

	b.BindTexture(5)
	b.ResetTextureCacheOnly()
	assert.Equal(t, 2, d.Count("BindTexture"))
	b.BindTexture(5)
	assert.Equal(t, 3, d.Count("BindTexture"))
}

func TestFramebufferDefaultRestoreAndViewport(t *testing.T) {
	screen := common.Rect{Width: 800, Height: 600}
	b, d, _ := newTestBinder(t, WithScreenViewport(screen))
	d.DefaultFramebuffer = 7

	quarter := common.Rect{Width: 200, Height: 150}
	fb1 := &gpu.Framebuffer{Handle: 11, Texture: 12, Viewport: quarter}
	fb2 := &gpu.Framebuffer{Handle: 13, Texture: 14, Viewport: quarter}

	b.BindFramebuffer(fb1)
	assert.Equal(t, 1, d.Count("FramebufferBinding"))
	assert.Equal(t, uint32(11), d.BoundFramebuffer())
	assert.Equal(t, quarter, b.CurrentViewport())

	b.BindFramebuffer(fb2)
	assert.Equal(t, 2, d.Count("BindFramebuffer"))
	assert.Equal(t, 1, d.Count("Viewport"))

	b.BindFramebuffer(fb2)
	assert.Equal(t, 2, d.Count("BindFramebuffer"))

	b.BindFramebuffer(nil)
	assert.Equal(t, uint32(7), d.BoundFramebuffer())
	assert.Equal(t, screen, b.CurrentViewport())
	assert.Nil(t, b.CurrentFramebuffer())
	assert.Equal(t, 2, d.Count("Viewport"))
	assert.Equal(t, 1, d.Count("FramebufferBinding"))
}

func TestVertexBuffers(t *testing.T) {
	b, d, _ := newTestBinder(t)
	vb := &gpu.VertexBuffer{Handle: 1, Components: 2}

	b.BindVertexBuffer(-1, vb)
	assert.Equal(t, 0, d.Total())

	b.BindVertexBuffer(1, vb)
	b.BindVertexBuffer(1, vb)
	assert.Equal(t, 1, d.Count("VertexAttrib"))
	assert.Equal(t, 1, d.Count("EnableVertexAttrib"))

	// same handle, different record
	b.BindVertexBuffer(1, &gpu.VertexBuffer{Handle: 1, Components: 2})
	assert.Equal(t, 2, d.Count("VertexAttrib"))

	b.UnbindAllVertexBuffers()
	enables := d.Count("EnableVertexAttrib")
	b.UnbindAllVertexBuffers()
	assert.Equal(t, enables, d.Count("EnableVertexAttrib"))
}

func TestUploadIndexDataKeepsCache(t *testing.T) {
	b, d, _ := newTestBinder(t)
	ib := &gpu.IndexBuffer{Handle: 2, Count: 3, Type: gpu.UnsignedShort}

	b.UploadIndexData(ib, []byte{0, 0, 1, 0, 2, 0}, gpu.StaticDraw)
	b.BindIndexBuffer(ib)
	assert.Equal(t, 1, d.Count("BufferData"))
	assert.Equal(t, 0, d.Count("BindIndexBuffer"))

	b.UnbindIndexBuffer()
	b.UnbindIndexBuffer()
	assert.Equal(t, 1, d.Count("BindIndexBuffer"))
}

func TestStats(t *testing.T) {
	b, _, _ := newTestBinder(t)

	b.SetDepthMask(true)
	b.SetDepthMask(true)
	b.SetDepthMask(true)
	assert.Equal(t, Stats{Issued: 1, Skipped: 2}, b.Stats())

	b.ResetStats()
	assert.Equal(t, Stats{}, b.Stats())
}
