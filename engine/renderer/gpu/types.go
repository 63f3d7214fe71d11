// Package gpu defines the device interface the render engine issues its GPU calls through,
// together with the state enums shared by the binder, draw calls and pass descriptions.
//
// The numeric values of BlendMode, CullMode, DepthFunc and ClearMode are the values stored
// in pass description documents and must not be reordered.
package gpu

import (
	"github.com/Carmen-Shannon/oxy-gles/common"
)

// BlendMode is the high-level blending selection of a draw call.
type BlendMode int

const (
	// BlendDefault disables blending.
	BlendDefault BlendMode = iota
	// BlendAlpha is regular "over" transparency.
	BlendAlpha
	// BlendAdditive adds the source on top of the destination.
	BlendAdditive
	// BlendMultiply multiplies the destination by the source color.
	BlendMultiply
	// BlendScreen brightens the destination by the inverse of the source.
	BlendScreen
	// BlendSubtract subtracts the source from the destination.
	BlendSubtract

	blendModeCount
)

// Valid reports whether m is one of the defined blend modes.
func (m BlendMode) Valid() bool {
	return m >= BlendDefault && m < blendModeCount
}

// CullMode selects which triangle faces are discarded.
type CullMode int

const (
	// CullDefault is normalized to CullBack by the binder.
	CullDefault CullMode = iota
	// CullBack discards back faces.
	CullBack
	// CullFront discards front faces.
	CullFront
	// CullNone disables face culling.
	CullNone
)

// DepthFunc is the depth comparison function.
type DepthFunc int

const (
	DepthLEqual DepthFunc = iota
	DepthLess
	DepthEqual
	DepthGEqual
	DepthGreater
	DepthNotEqual
	DepthAlways
	DepthNever
	// DepthDisabled is only meaningful in pass descriptions, where it turns the depth test off.
	DepthDisabled
)

// ClearMode selects which buffers a clear operation touches.
type ClearMode int

const (
	ClearNone ClearMode = iota
	ClearColor
	ClearDepth
	ClearColorAndDepth
)

// HasColor reports whether the mode clears the color buffer.
func (m ClearMode) HasColor() bool {
	return m == ClearColor || m == ClearColorAndDepth
}

// HasDepth reports whether the mode clears the depth buffer.
func (m ClearMode) HasDepth() bool {
	return m == ClearDepth || m == ClearColorAndDepth
}

// BlendFactor is a primitive blend-function operand.
type BlendFactor int

const (
	FactorZero BlendFactor = iota
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstColor
	FactorOneMinusDstColor
	FactorDstAlpha
	FactorOneMinusDstAlpha
)

// BlendEquation combines the weighted source and destination.
type BlendEquation int

const (
	EquationAdd BlendEquation = iota
	EquationSubtract
	EquationReverseSubtract
)

// Primitive is the topology passed to a draw.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	Lines
	Points
)

// DataType is the component type of vertex or index data.
type DataType int

const (
	Float DataType = iota
	UnsignedByte
	UnsignedShort
	Short
)

// Size returns the size in bytes of one component of the type.
func (t DataType) Size() int {
	switch t {
	case UnsignedByte:
		return 1
	case UnsignedShort, Short:
		return 2
	default:
		return 4
	}
}

// BufferTarget is the binding point a buffer upload goes through.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// BufferUsage is the expected update frequency of a buffer's contents.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

// VertexBuffer describes the source of one shader attribute. The binder compares vertex
// buffers by pointer identity, so a buffer must be kept at a stable address while in use.
type VertexBuffer struct {
	// Handle is the GPU buffer name.
	Handle uint32
	// Components is the number of components per vertex (1 to 4).
	Components int
	// Type is the component data type.
	Type DataType
	// Normalized maps integer data to [0, 1] or [-1, 1].
	Normalized bool
	// Stride and Offset are in bytes.
	Stride, Offset int
}

// IndexBuffer describes an element array buffer.
type IndexBuffer struct {
	// Handle is the GPU buffer name.
	Handle uint32
	// Count is the number of indices in the buffer.
	Count int
	// Type is UnsignedShort or UnsignedByte under GLES 2.0.
	Type DataType
}

// Framebuffer is an offscreen render target. A nil *Framebuffer stands for the default screen.
type Framebuffer struct {
	// Handle is the GPU framebuffer name.
	Handle uint32
	// Texture is the color attachment texture name, or -1 if none is attached.
	Texture int32
	// Depth is the depth renderbuffer name, or 0 if the target has no depth buffer.
	Depth uint32
	// Viewport is re-applied every time the framebuffer is bound.
	Viewport common.Rect
}

// HasDepth reports whether a depth buffer is attached.
func (f *Framebuffer) HasDepth() bool {
	return f != nil && f.Depth != 0
}
