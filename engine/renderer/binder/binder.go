// Package binder implements the GPU binding cache. Every state change the render engine makes
// goes through a Binder, which only issues the underlying device call when the requested state
// differs from the cached state or the category has been forced to resynchronize.
package binder

import (
	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
)

// MaxVertexAttribs is the number of attribute slots the binder tracks. GLES 2.0 guarantees 8.
const MaxVertexAttribs = 8

// category is a bit in the force-resync mask.
type category uint32

const (
	catIndexBuffer category = 1 << iota
	catTexture
	catFramebuffer
	catProgram
	catBlendEnable
	catBlendFunc
	catBlendEquation
	catCull
	catDepthTest
	catDepthFunc
	catDepthMask
	catColorMask
	catViewport

	catAll = catViewport<<1 - 1
)

// Stats counts the state changes a binder issued to the device and the ones it skipped.
type Stats struct {
	Issued  int
	Skipped int
}

// Binder is the GPU binding cache. It is not safe for concurrent use; all calls belong on the
// GL thread.
type Binder interface {
	// Device returns the device the binder issues its calls through. Callers may use it
	// for uniform uploads and draws, never for state the binder tracks.
	Device() gpu.Device

	// Shaders returns the program registry used to resolve program ids.
	Shaders() *shader.Registry

	// BindVertexBuffer points attribute slot at vb and enables the slot. Buffers are compared
	// by identity. A negative slot, as reported for attributes a program does not use, is ignored.
	BindVertexBuffer(slot int, vb *gpu.VertexBuffer)

	// UnbindVertexBuffer disables the attribute array at slot.
	UnbindVertexBuffer(slot int)

	// UnbindAllVertexBuffers disables every tracked attribute array.
	UnbindAllVertexBuffers()

	// BindIndexBuffer binds the element array buffer.
	BindIndexBuffer(ib *gpu.IndexBuffer)

	// UnbindIndexBuffer unbinds the element array buffer.
	UnbindIndexBuffer()

	// UploadVertexData uploads data into vb's buffer.
	UploadVertexData(vb *gpu.VertexBuffer, data []byte, usage gpu.BufferUsage)

	// UploadIndexData uploads data into ib's buffer, which leaves ib bound.
	UploadIndexData(ib *gpu.IndexBuffer, data []byte, usage gpu.BufferUsage)

	// BindTexture binds a texture name on unit 0. Id -1 binds no texture.
	BindTexture(id int32)

	// UnbindTexture binds no texture.
	UnbindTexture()

	// ResetTextureCacheOnly forgets the cached texture without a device call. Call it before
	// anything that binds a texture behind the binder's back, such as texture creation.
	ResetTextureCacheOnly()

	// BindFramebuffer binds an offscreen framebuffer, or the default screen when fb is nil.
	// The target's viewport is re-applied through SetViewport every time.
	BindFramebuffer(fb *gpu.Framebuffer)

	// CurrentFramebuffer returns the bound offscreen framebuffer, or nil for the screen.
	CurrentFramebuffer() *gpu.Framebuffer

	// BindShaderProgram makes program id current. It returns false and leaves the cache
	// untouched when no such program is registered.
	BindShaderProgram(id int) bool

	// ResetShaderProgramCacheOnly forgets the cached program without a device call.
	ResetShaderProgramCacheOnly()

	// CurrentProgram returns the bound program, or nil.
	CurrentProgram() *shader.Program

	// GetCurrentProgramId returns the bound program id, or -1.
	GetCurrentProgramId() int

	// SetBlendMode maps a high-level blend mode onto enable, function and equation state.
	// BlendDefault and out-of-range modes disable blending.
	SetBlendMode(straightAlpha bool, mode gpu.BlendMode)

	// SetBlendEnable toggles blending.
	SetBlendEnable(enabled bool)

	// SetBlendFunc sets the blend factors.
	SetBlendFunc(src, dst gpu.BlendFactor)

	// SetBlendEquation sets the blend equation.
	SetBlendEquation(eq gpu.BlendEquation)

	// SetCullMode sets face culling. CullDefault is treated as CullBack.
	SetCullMode(mode gpu.CullMode)

	// SetDepthTest toggles the depth test and sets its function. Enabling the test after it
	// was disabled always re-issues the function.
	SetDepthTest(enabled bool, fn gpu.DepthFunc)

	// SetDepthMask toggles depth writes.
	SetDepthMask(enabled bool)

	// SetColorMask toggles color writes per channel.
	SetColorMask(r, g, b, a bool)

	// SetViewport sets the viewport rectangle.
	SetViewport(r common.Rect)

	// CurrentViewport returns the last viewport set.
	CurrentViewport() common.Rect

	// SetScreenViewport sets the viewport applied when the default screen is bound.
	SetScreenViewport(r common.Rect)

	// ScreenViewport returns the viewport of the default screen.
	ScreenViewport() common.Rect

	// ForceResyncAll makes the next call of every operation reach the device regardless of
	// the cached value. Call it after anything outside the engine may have changed GPU state.
	ForceResyncAll()

	// Stats returns the state change counters since the last ResetStats.
	Stats() Stats

	// ResetStats zeroes the state change counters.
	ResetStats()
}

// binder is the implementation of the Binder interface.
type binder struct {
	device  gpu.Device
	shaders *shader.Registry

	force      category
	forceAttrs [MaxVertexAttribs]bool

	vertexBuffers [MaxVertexAttribs]*gpu.VertexBuffer
	attrEnabled   [MaxVertexAttribs]bool
	indexBuffer   *gpu.IndexBuffer

	texture int32

	framebuffer     *gpu.Framebuffer
	boundHandle     uint32
	defaultHandle   uint32
	defaultCaptured bool
	screenViewport  common.Rect

	program int

	blendEnabled  bool
	blendSrc      gpu.BlendFactor
	blendDst      gpu.BlendFactor
	blendEquation gpu.BlendEquation

	cull gpu.CullMode

	depthTest bool
	depthFunc gpu.DepthFunc
	depthMask bool
	colorMask [4]bool

	viewport common.Rect

	stats Stats
}

var _ Binder = &binder{}

// NewBinder creates a Binder over device resolving programs in shaders. Every category starts
// forced, so the first call of each operation always reaches the device.
//
// Parameters:
//   - device: the GPU device
//   - shaders: the program registry
//   - options: functional options to configure the binder
//
// Returns:
//   - Binder: the binding cache
func NewBinder(device gpu.Device, shaders *shader.Registry, options ...BinderBuilderOption) Binder {
	if device == nil {
		panic("binder: NewBinder requires a non-nil gpu.Device")
	}
	if shaders == nil {
		panic("binder: NewBinder requires a non-nil shader.Registry")
	}
	b := &binder{
		device:  device,
		shaders: shaders,
		program: -1,
		texture: -1,
	}
	for _, opt := range options {
		opt(b)
	}
	b.ForceResyncAll()
	return b
}

func (b *binder) Device() gpu.Device {
	return b.device
}

func (b *binder) Shaders() *shader.Registry {
	return b.shaders
}

// needs reports whether a category must reach the device and clears its force bit.
func (b *binder) needs(c category, differs bool) bool {
	if differs || b.force&c != 0 {
		b.force &^= c
		b.stats.Issued++
		return true
	}
	b.stats.Skipped++
	return false
}

func (b *binder) BindVertexBuffer(slot int, vb *gpu.VertexBuffer) {
	if slot < 0 || slot >= MaxVertexAttribs || vb == nil {
		return
	}
	forced := b.forceAttrs[slot]
	b.forceAttrs[slot] = false
	if forced || b.vertexBuffers[slot] != vb {
		b.device.VertexAttrib(slot, vb)
		b.vertexBuffers[slot] = vb
		b.stats.Issued++
	} else {
		b.stats.Skipped++
	}
	if forced || !b.attrEnabled[slot] {
		b.device.EnableVertexAttrib(slot, true)
		b.attrEnabled[slot] = true
	}
}

func (b *binder) UnbindVertexBuffer(slot int) {
	if slot < 0 || slot >= MaxVertexAttribs {
		return
	}
	forced := b.forceAttrs[slot]
	b.forceAttrs[slot] = false
	b.vertexBuffers[slot] = nil
	if forced || b.attrEnabled[slot] {
		b.device.EnableVertexAttrib(slot, false)
		b.attrEnabled[slot] = false
		b.stats.Issued++
		return
	}
	b.stats.Skipped++
}

func (b *binder) UnbindAllVertexBuffers() {
	for slot := range MaxVertexAttribs {
		b.UnbindVertexBuffer(slot)
	}
}

func (b *binder) BindIndexBuffer(ib *gpu.IndexBuffer) {
	if ib == nil {
		b.UnbindIndexBuffer()
		return
	}
	if b.needs(catIndexBuffer, b.indexBuffer != ib) {
		b.device.BindIndexBuffer(ib.Handle)
		b.indexBuffer = ib
	}
}

func (b *binder) UnbindIndexBuffer() {
	if b.needs(catIndexBuffer, b.indexBuffer != nil) {
		b.device.BindIndexBuffer(0)
		b.indexBuffer = nil
	}
}

func (b *binder) UploadVertexData(vb *gpu.VertexBuffer, data []byte, usage gpu.BufferUsage) {
	b.device.BufferData(gpu.ArrayBuffer, vb.Handle, data, usage)
}

func (b *binder) UploadIndexData(ib *gpu.IndexBuffer, data []byte, usage gpu.BufferUsage) {
	b.device.BufferData(gpu.ElementArrayBuffer, ib.Handle, data, usage)
	b.indexBuffer = ib
	b.force &^= catIndexBuffer
}

func (b *binder) BindTexture(id int32) {
	if id < 0 {
		id = -1
	}
	if b.needs(catTexture, b.texture != id) {
		handle := uint32(0)
		if id > 0 {
			handle = uint32(id)
		}
		b.device.BindTexture(handle)
		b.texture = id
	}
}

func (b *binder) UnbindTexture() {
	b.BindTexture(-1)
}

func (b *binder) ResetTextureCacheOnly() {
	b.force |= catTexture
}

func (b *binder) BindFramebuffer(fb *gpu.Framebuffer) {
	handle := b.defaultHandle
	viewport := b.screenViewport
	if fb != nil {
		if !b.defaultCaptured {
			b.defaultHandle = b.device.FramebufferBinding()
			b.defaultCaptured = true
		}
		handle = fb.Handle
		viewport = fb.Viewport
	}
	if b.needs(catFramebuffer, b.boundHandle != handle) {
		b.device.BindFramebuffer(handle)
		b.boundHandle = handle
	}
	b.framebuffer = fb
	b.SetViewport(viewport)
}

func (b *binder) CurrentFramebuffer() *gpu.Framebuffer {
	return b.framebuffer
}

func (b *binder) BindShaderProgram(id int) bool {
	p := b.shaders.Program(id)
	if p == nil {
		return false
	}
	if b.needs(catProgram, b.program != id) {
		b.device.UseProgram(p.Handle())
		b.program = id
	}
	return true
}

func (b *binder) ResetShaderProgramCacheOnly() {
	b.program = -1
	b.force |= catProgram
}

func (b *binder) CurrentProgram() *shader.Program {
	return b.shaders.Program(b.program)
}

func (b *binder) GetCurrentProgramId() int {
	return b.program
}

func (b *binder) SetBlendMode(straightAlpha bool, mode gpu.BlendMode) {
	if mode == gpu.BlendDefault || !mode.Valid() {
		b.SetBlendEnable(false)
		return
	}
	src := gpu.FactorOne
	if straightAlpha {
		src = gpu.FactorSrcAlpha
	}
	eq := gpu.EquationAdd
	var dst gpu.BlendFactor
	switch mode {
	case gpu.BlendAlpha:
		dst = gpu.FactorOneMinusSrcAlpha
	case gpu.BlendAdditive:
		dst = gpu.FactorOne
	case gpu.BlendMultiply:
		src, dst = gpu.FactorDstColor, gpu.FactorOneMinusSrcAlpha
	case gpu.BlendScreen:
		src, dst = gpu.FactorOne, gpu.FactorOneMinusSrcColor
	case gpu.BlendSubtract:
		dst = gpu.FactorOne
		eq = gpu.EquationReverseSubtract
	}
	b.SetBlendEnable(true)
	b.SetBlendFunc(src, dst)
	b.SetBlendEquation(eq)
}

func (b *binder) SetBlendEnable(enabled bool) {
	if b.needs(catBlendEnable, b.blendEnabled != enabled) {
		b.device.SetBlendEnabled(enabled)
		b.blendEnabled = enabled
	}
}

func (b *binder) SetBlendFunc(src, dst gpu.BlendFactor) {
	if b.needs(catBlendFunc, b.blendSrc != src || b.blendDst != dst) {
		b.device.BlendFunc(src, dst)
		b.blendSrc, b.blendDst = src, dst
	}
}

func (b *binder) SetBlendEquation(eq gpu.BlendEquation) {
	if b.needs(catBlendEquation, b.blendEquation != eq) {
		b.device.BlendEquation(eq)
		b.blendEquation = eq
	}
}

func (b *binder) SetCullMode(mode gpu.CullMode) {
	if mode == gpu.CullDefault {
		mode = gpu.CullBack
	}
	if b.needs(catCull, b.cull != mode) {
		b.device.SetCullMode(mode)
		b.cull = mode
	}
}

func (b *binder) SetDepthTest(enabled bool, fn gpu.DepthFunc) {
	wasDisabled := !b.depthTest
	if b.needs(catDepthTest, b.depthTest != enabled) {
		b.device.SetDepthTestEnabled(enabled)
		b.depthTest = enabled
	}
	if !enabled {
		return
	}
	// the driver may have dropped the function while the test was off
	if wasDisabled {
		b.force |= catDepthFunc
	}
	if b.needs(catDepthFunc, b.depthFunc != fn) {
		b.device.DepthFunc(fn)
		b.depthFunc = fn
	}
}

func (b *binder) SetDepthMask(enabled bool) {
	if b.needs(catDepthMask, b.depthMask != enabled) {
		b.device.DepthMask(enabled)
		b.depthMask = enabled
	}
}

func (b *binder) SetColorMask(r, g, bl, a bool) {
	mask := [4]bool{r, g, bl, a}
	if b.needs(catColorMask, b.colorMask != mask) {
		b.device.ColorMask(r, g, bl, a)
		b.colorMask = mask
	}
}

func (b *binder) SetViewport(r common.Rect) {
	if b.needs(catViewport, b.viewport != r) {
		b.device.Viewport(r)
		b.viewport = r
	}
}

func (b *binder) CurrentViewport() common.Rect {
	return b.viewport
}

func (b *binder) SetScreenViewport(r common.Rect) {
	b.screenViewport = r
	if b.framebuffer == nil {
		b.SetViewport(r)
	}
}

func (b *binder) ScreenViewport() common.Rect {
	return b.screenViewport
}

func (b *binder) ForceResyncAll() {
	b.force = catAll
	for i := range b.forceAttrs {
		b.forceAttrs[i] = true
	}
}

func (b *binder) Stats() Stats {
	return b.stats
}

func (b *binder) ResetStats() {
	b.stats = Stats{}
}
