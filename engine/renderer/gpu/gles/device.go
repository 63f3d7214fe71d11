// Package gles implements gpu.Device on OpenGL ES 2.0 through golang.org/x/mobile/gl.
//
// The gl.Context handed to NewDevice forwards every call to the thread that owns the GL
// context (see gl.Worker); the window package pumps that worker on the main thread.
package gles

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/gl"
)

// device is the gl.Context backed implementation of gpu.Device.
type device struct {
	ctx gl.Context
}

var _ gpu.Device = &device{}

// NewDevice wraps a GL ES 2.0 context as a gpu.Device. Texture unit 0 is made active once;
// the engine never samples from other units.
//
// Parameters:
//   - ctx: the GL context, typically obtained from gl.NewContext on the window thread
//
// Returns:
//   - gpu.Device: the device
func NewDevice(ctx gl.Context) gpu.Device {
	if ctx == nil {
		panic("gles: NewDevice requires a non-nil gl.Context")
	}
	d := &device{ctx: ctx}
	d.ctx.ActiveTexture(gl.TEXTURE0)
	d.check()
	return d
}

func (d *device) CreateBuffer() uint32 {
	b := d.ctx.CreateBuffer()
	d.check()
	return b.Value
}

func (d *device) BufferData(target gpu.BufferTarget, handle uint32, data []byte, usage gpu.BufferUsage) {
	t := bufferTarget(target)
	d.ctx.BindBuffer(t, gl.Buffer{Value: handle})
	d.ctx.BufferData(t, data, bufferUsage(usage))
	d.check()
}

func (d *device) DeleteBuffer(handle uint32) {
	d.ctx.DeleteBuffer(gl.Buffer{Value: handle})
	d.check()
}

func (d *device) VertexAttrib(slot int, vb *gpu.VertexBuffer) {
	d.ctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{Value: vb.Handle})
	d.ctx.VertexAttribPointer(gl.Attrib{Value: uint(slot)}, vb.Components, dataType(vb.Type), vb.Normalized, vb.Stride, vb.Offset)
	d.check()
}

func (d *device) EnableVertexAttrib(slot int, enabled bool) {
	if enabled {
		d.ctx.EnableVertexAttribArray(gl.Attrib{Value: uint(slot)})
	} else {
		d.ctx.DisableVertexAttribArray(gl.Attrib{Value: uint(slot)})
	}
	d.check()
}

func (d *device) BindIndexBuffer(handle uint32) {
	d.ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{Value: handle})
	d.check()
}

func (d *device) CreateTexture(width, height int) uint32 {
	t := d.ctx.CreateTexture()
	d.ctx.BindTexture(gl.TEXTURE_2D, t)
	d.ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	d.check()
	return t.Value
}

func (d *device) BindTexture(handle uint32) {
	d.ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{Value: handle})
	d.check()
}

func (d *device) CreateFramebuffer() uint32 {
	fb := d.ctx.CreateFramebuffer()
	d.check()
	return fb.Value
}

func (d *device) FramebufferTexture(texture uint32) {
	d.ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, gl.Texture{Value: texture}, 0)
	d.check()
}

func (d *device) FramebufferDepth(width, height int) uint32 {
	rb := d.ctx.CreateRenderbuffer()
	d.ctx.BindRenderbuffer(gl.RENDERBUFFER, rb)
	d.ctx.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT16, width, height)
	d.ctx.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rb)
	d.check()
	return rb.Value
}

func (d *device) BindFramebuffer(handle uint32) {
	d.ctx.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{Value: handle})
	d.check()
}

func (d *device) FramebufferBinding() uint32 {
	v := d.ctx.GetInteger(gl.FRAMEBUFFER_BINDING)
	d.check()
	return uint32(v)
}

func (d *device) CreateProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := d.compile(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := d.compile(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		d.ctx.DeleteShader(vs)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	p := d.ctx.CreateProgram()
	d.ctx.AttachShader(p, vs)
	d.ctx.AttachShader(p, fs)
	d.ctx.LinkProgram(p)
	// the shaders stay alive while attached
	d.ctx.DeleteShader(vs)
	d.ctx.DeleteShader(fs)

	if d.ctx.GetProgrami(p, gl.LINK_STATUS) == 0 {
		log := d.ctx.GetProgramInfoLog(p)
		d.ctx.DeleteProgram(p)
		return 0, fmt.Errorf("link failed: %s", log)
	}
	d.check()
	return p.Value, nil
}

func (d *device) compile(typ gl.Enum, src string) (gl.Shader, error) {
	s := d.ctx.CreateShader(typ)
	d.ctx.ShaderSource(s, src)
	d.ctx.CompileShader(s)
	if d.ctx.GetShaderi(s, gl.COMPILE_STATUS) == 0 {
		log := d.ctx.GetShaderInfoLog(s)
		d.ctx.DeleteShader(s)
		return gl.Shader{}, fmt.Errorf("compile failed: %s", log)
	}
	return s, nil
}

func (d *device) UseProgram(handle uint32) {
	d.ctx.UseProgram(gl.Program{Init: true, Value: handle})
	d.check()
}

func (d *device) UniformLocation(program uint32, name string) int32 {
	u := d.ctx.GetUniformLocation(gl.Program{Init: true, Value: program}, name)
	d.check()
	return u.Value
}

func (d *device) AttribLocation(program uint32, name string) int32 {
	a := d.ctx.GetAttribLocation(gl.Program{Init: true, Value: program}, name)
	d.check()
	return int32(uint32(a.Value))
}

func (d *device) UniformFloats(location int32, v []float32) {
	if location < 0 {
		return
	}
	u := gl.Uniform{Value: location}
	switch len(v) {
	case 1:
		d.ctx.Uniform1f(u, v[0])
	case 2:
		d.ctx.Uniform2f(u, v[0], v[1])
	case 3:
		d.ctx.Uniform3f(u, v[0], v[1], v[2])
	case 4:
		d.ctx.Uniform4f(u, v[0], v[1], v[2], v[3])
	}
	d.check()
}

func (d *device) UniformInt(location int32, v int32) {
	if location < 0 {
		return
	}
	d.ctx.Uniform1i(gl.Uniform{Value: location}, int(v))
	d.check()
}

func (d *device) UniformMatrices(location int32, m []mgl32.Mat4) {
	if location < 0 || len(m) == 0 {
		return
	}
	flat := make([]float32, 0, 16*len(m))
	for i := range m {
		flat = append(flat, m[i][:]...)
	}
	d.ctx.UniformMatrix4fv(gl.Uniform{Value: location}, flat)
	d.check()
}

func (d *device) SetBlendEnabled(enabled bool) {
	d.toggle(gl.BLEND, enabled)
}

func (d *device) BlendFunc(src, dst gpu.BlendFactor) {
	d.ctx.BlendFunc(blendFactor(src), blendFactor(dst))
	d.check()
}

func (d *device) BlendEquation(eq gpu.BlendEquation) {
	d.ctx.BlendEquation(blendEquation(eq))
	d.check()
}

func (d *device) SetCullMode(mode gpu.CullMode) {
	switch mode {
	case gpu.CullNone:
		d.ctx.Disable(gl.CULL_FACE)
	case gpu.CullFront:
		d.ctx.Enable(gl.CULL_FACE)
		d.ctx.CullFace(gl.FRONT)
	default:
		d.ctx.Enable(gl.CULL_FACE)
		d.ctx.CullFace(gl.BACK)
	}
	d.check()
}

func (d *device) SetDepthTestEnabled(enabled bool) {
	d.toggle(gl.DEPTH_TEST, enabled)
}

func (d *device) DepthFunc(fn gpu.DepthFunc) {
	d.ctx.DepthFunc(depthFunc(fn))
	d.check()
}

func (d *device) DepthMask(enabled bool) {
	d.ctx.DepthMask(enabled)
	d.check()
}

func (d *device) ColorMask(r, g, b, a bool) {
	d.ctx.ColorMask(r, g, b, a)
	d.check()
}

func (d *device) Viewport(r common.Rect) {
	d.ctx.Viewport(int(r.X), int(r.Y), int(r.Width), int(r.Height))
	d.check()
}

func (d *device) Clear(mode gpu.ClearMode, color common.Color) {
	var mask gl.Enum
	if mode.HasColor() {
		d.ctx.ClearColor(color[0], color[1], color[2], color[3])
		mask |= gl.COLOR_BUFFER_BIT
	}
	if mode.HasDepth() {
		d.ctx.ClearDepthf(1)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if mask != 0 {
		d.ctx.Clear(mask)
	}
	d.check()
}

func (d *device) DrawArrays(prim gpu.Primitive, first, count int) {
	d.ctx.DrawArrays(primitive(prim), first, count)
	d.check()
}

func (d *device) DrawElements(prim gpu.Primitive, count int, typ gpu.DataType, offset int) {
	d.ctx.DrawElements(primitive(prim), count, dataType(typ), offset)
	d.check()
}

func (d *device) toggle(capability gl.Enum, enabled bool) {
	if enabled {
		d.ctx.Enable(capability)
	} else {
		d.ctx.Disable(capability)
	}
	d.check()
}
