package gpu

import (
	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Device is the raw GPU call surface. Every method maps to one state change or command of
// an OpenGL ES 2.0 style API. Implementations never cache; deduplication is the binder's job,
// so a Device must not be called around the binder for any state the binder tracks.
type Device interface {
	// CreateBuffer allocates a new buffer name.
	CreateBuffer() uint32

	// BufferData binds handle to target and uploads data.
	// For ElementArrayBuffer this changes the element buffer binding.
	BufferData(target BufferTarget, handle uint32, data []byte, usage BufferUsage)

	// DeleteBuffer releases a buffer name.
	DeleteBuffer(handle uint32)

	// VertexAttrib points attribute slot at the given vertex buffer.
	VertexAttrib(slot int, vb *VertexBuffer)

	// EnableVertexAttrib enables or disables the attribute array at slot.
	EnableVertexAttrib(slot int, enabled bool)

	// BindIndexBuffer binds the element array buffer. Zero unbinds.
	BindIndexBuffer(handle uint32)

	// CreateTexture allocates an RGBA texture of the given size with linear filtering and
	// clamped edges, leaving it bound to texture unit 0.
	CreateTexture(width, height int) uint32

	// BindTexture binds a 2D texture on unit 0. Zero unbinds.
	BindTexture(handle uint32)

	// CreateFramebuffer allocates a framebuffer name.
	CreateFramebuffer() uint32

	// FramebufferTexture attaches a texture as the color attachment of the bound framebuffer.
	FramebufferTexture(texture uint32)

	// FramebufferDepth creates a depth renderbuffer, attaches it to the bound framebuffer
	// and returns its name.
	FramebufferDepth(width, height int) uint32

	// BindFramebuffer binds the framebuffer used for drawing.
	BindFramebuffer(handle uint32)

	// FramebufferBinding queries the currently bound framebuffer name.
	FramebufferBinding() uint32

	// CreateProgram compiles and links a vertex/fragment pair.
	CreateProgram(vertexSource, fragmentSource string) (uint32, error)

	// UseProgram makes a linked program current.
	UseProgram(handle uint32)

	// UniformLocation looks up a uniform of program, returning -1 if absent.
	UniformLocation(program uint32, name string) int32

	// AttribLocation looks up an attribute of program, returning -1 if absent.
	AttribLocation(program uint32, name string) int32

	// UniformFloats uploads a float, vec2, vec3 or vec4 depending on len(v). Location -1 is ignored.
	UniformFloats(location int32, v []float32)

	// UniformInt uploads an int or sampler unit. Location -1 is ignored.
	UniformInt(location int32, v int32)

	// UniformMatrices uploads one or more 4x4 matrices. Location -1 is ignored.
	UniformMatrices(location int32, m []mgl32.Mat4)

	// SetBlendEnabled toggles blending.
	SetBlendEnabled(enabled bool)

	// BlendFunc sets the source and destination factors.
	BlendFunc(src, dst BlendFactor)

	// BlendEquation sets the blend equation.
	BlendEquation(eq BlendEquation)

	// SetCullMode toggles culling and selects the culled face. CullDefault is never passed.
	SetCullMode(mode CullMode)

	// SetDepthTestEnabled toggles the depth test.
	SetDepthTestEnabled(enabled bool)

	// DepthFunc sets the depth comparison function.
	DepthFunc(fn DepthFunc)

	// DepthMask toggles depth writes.
	DepthMask(enabled bool)

	// ColorMask toggles writes per color channel.
	ColorMask(r, g, b, a bool)

	// Viewport sets the viewport rectangle.
	Viewport(r common.Rect)

	// Clear clears the bound framebuffer.
	Clear(mode ClearMode, color common.Color)

	// DrawArrays draws count vertices starting at first.
	DrawArrays(prim Primitive, first, count int)

	// DrawElements draws count indices from the bound element buffer.
	DrawElements(prim Primitive, count int, typ DataType, offset int)
}
