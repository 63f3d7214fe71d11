// Package drawcall implements the draw call record and the frame-scoped pool it is allocated
// from. A draw call carries one render target and a full snapshot of the GPU state it needs.
package drawcall

import (
	"maps"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawCall describes one render operation. Records come from a Pool, are reset on
// acquisition and are only valid until the pool is reset at the end of the frame.
type DrawCall struct {
	// Target is what the draw call renders.
	Target Target

	// Transform is pushed onto the queue's model stack while the draw call runs.
	Transform mgl32.Mat4

	// Program is the shader program id. Unknown ids, -1 included, skip the draw instead of
	// drawing with whatever program is still bound; clears do not need a program.
	Program int

	// Texture is the texture name bound on unit 0, or -1 to fall back to the polygon
	// map's surface texture (and to no texture for other targets).
	Texture int32

	// Framebuffer is the render target, nil for the default screen.
	Framebuffer *gpu.Framebuffer

	// Player binds animation for polygon map targets; nil binds the null animation.
	Player animator.Player

	StraightAlpha bool
	Blend         gpu.BlendMode
	Cull          gpu.CullMode
	DepthTest     bool
	DepthFunc     gpu.DepthFunc
	DepthMask     bool
	ColorMask     [4]bool

	// Uniforms maps custom uniform slots to their values.
	Uniforms map[int]shader.UniformValue
}

var _ queue.Command = &DrawCall{}

// reset restores every field to its default.
func (dc *DrawCall) reset() {
	dc.Target = nil
	dc.Transform = mgl32.Ident4()
	dc.Program = 0
	dc.Texture = -1
	dc.Framebuffer = nil
	dc.Player = nil
	dc.StraightAlpha = false
	dc.Blend = gpu.BlendDefault
	dc.Cull = gpu.CullDefault
	dc.DepthTest = true
	dc.DepthFunc = gpu.DepthLEqual
	dc.DepthMask = true
	dc.ColorMask = [4]bool{true, true, true, true}
	if dc.Uniforms == nil {
		dc.Uniforms = make(map[int]shader.UniformValue)
	} else {
		clear(dc.Uniforms)
	}
}

// SetPolygonMap resets the draw call and targets a polygon map.
//
// Parameters:
//   - pm: the polygon map
func (dc *DrawCall) SetPolygonMap(pm model.PolygonMap) {
	dc.reset()
	dc.Target = PolygonMapTarget{PolygonMap: pm}
}

// SetBox resets the draw call and targets a box outline.
//
// Parameters:
//   - box: the box
func (dc *DrawCall) SetBox(box common.BoundingBox) {
	dc.reset()
	dc.Target = BoxTarget{Box: box}
}

// SetParticles resets the draw call and targets count particle quads.
//
// Parameters:
//   - count: the number of particles
func (dc *DrawCall) SetParticles(count int) {
	dc.reset()
	dc.Target = ParticleTarget{Count: count}
}

// SetFullScreen resets the draw call and targets a full-screen quad.
func (dc *DrawCall) SetFullScreen() {
	dc.reset()
	dc.Target = FullScreenTarget{}
}

// SetClear resets the draw call and targets a clear of the bound framebuffer.
//
// Parameters:
//   - mode: which buffers to clear
//   - color: the clear color
func (dc *DrawCall) SetClear(mode gpu.ClearMode, color common.Color) {
	dc.reset()
	dc.Target = ClearTarget{Mode: mode, Color: color}
}

// CopyFrom deep-copies other into dc, including the uniform map.
//
// Parameters:
//   - other: the source draw call
func (dc *DrawCall) CopyFrom(other *DrawCall) {
	if dc == other {
		return
	}
	uniforms := dc.Uniforms
	*dc = *other
	if uniforms == nil {
		uniforms = make(map[int]shader.UniformValue, len(other.Uniforms))
	} else {
		clear(uniforms)
	}
	maps.Copy(uniforms, other.Uniforms)
	dc.Uniforms = uniforms
}

// SetUniform sets a custom uniform value.
//
// Parameters:
//   - slot: the registry slot of the uniform
//   - v: the value
func (dc *DrawCall) SetUniform(slot int, v shader.UniformValue) {
	if dc.Uniforms == nil {
		dc.Uniforms = make(map[int]shader.UniformValue)
	}
	dc.Uniforms[slot] = v
}

// Execute renders the draw call through the queue's binder.
//
// Parameters:
//   - q: the executing queue
func (dc *DrawCall) Execute(q queue.RenderQueue) {
	b := q.Binder()
	b.BindFramebuffer(dc.Framebuffer)

	if c, ok := dc.Target.(ClearTarget); ok {
		dc.clear(b.Device(), q, c)
		return
	}
	if dc.Target == nil || !b.BindShaderProgram(dc.Program) {
		return
	}
	p := b.CurrentProgram()

	b.SetBlendMode(dc.StraightAlpha, dc.Blend)
	b.SetCullMode(dc.Cull)
	b.SetDepthTest(dc.DepthTest, dc.DepthFunc)
	b.SetDepthMask(dc.DepthMask)
	b.SetColorMask(dc.ColorMask[0], dc.ColorMask[1], dc.ColorMask[2], dc.ColorMask[3])

	q.PushModel(dc.Transform)
	defer q.PopModel()

	texture := dc.Texture
	if pm, ok := dc.Target.(PolygonMapTarget); texture < 0 && ok && pm.PolygonMap != nil {
		if s := pm.PolygonMap.Surface(); s != nil {
			texture = s.Texture()
		}
	}
	b.BindTexture(texture)

	d := b.Device()
	if loc := p.Location(shader.UniformTexture); loc >= 0 {
		d.UniformInt(loc, 0)
	}
	q.BindBuiltinUniforms(p)

	viewport := b.CurrentViewport()
	for slot, v := range dc.Uniforms {
		if loc := p.CustomLocation(slot); loc >= 0 {
			d.UniformFloats(loc, v.Resolve(viewport))
		}
	}

	switch t := dc.Target.(type) {
	case PolygonMapTarget:
		if t.PolygonMap == nil {
			return
		}
		if dc.Player != nil {
			dc.Player.Bind(q)
		} else {
			animator.BindNull(q)
		}
		t.PolygonMap.BindSurface(q)
		t.PolygonMap.Render(q)
	case FullScreenTarget:
		if s := q.Shapes(); s != nil {
			s.DrawFullScreen()
		}
	case BoxTarget:
		if s := q.Shapes(); s != nil {
			s.DrawBox(t.Box)
		}
	case ParticleTarget:
		if loc := p.Location(shader.UniformParticleCount); loc >= 0 {
			d.UniformFloats(loc, []float32{float32(t.Count)})
		}
		if s := q.Shapes(); s != nil {
			s.DrawParticles(t.Count)
		}
	}
}

// clear enables writes to the cleared buffers through the binder, since the clear honors the masks.
func (dc *DrawCall) clear(d gpu.Device, q queue.RenderQueue, c ClearTarget) {
	if c.Mode == gpu.ClearNone {
		return
	}
	b := q.Binder()
	if c.Mode.HasColor() {
		b.SetColorMask(true, true, true, true)
	}
	if c.Mode.HasDepth() {
		b.SetDepthMask(true)
	}
	d.Clear(c.Mode, c.Color)
}
