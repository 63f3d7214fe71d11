package gles

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"golang.org/x/mobile/gl"
)

func bufferTarget(t gpu.BufferTarget) gl.Enum {
	if t == gpu.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u gpu.BufferUsage) gl.Enum {
	switch u {
	case gpu.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case gpu.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func dataType(t gpu.DataType) gl.Enum {
	switch t {
	case gpu.UnsignedByte:
		return gl.UNSIGNED_BYTE
	case gpu.UnsignedShort:
		return gl.UNSIGNED_SHORT
	case gpu.Short:
		return gl.SHORT
	default:
		return gl.FLOAT
	}
}

func primitive(p gpu.Primitive) gl.Enum {
	switch p {
	case gpu.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.Lines:
		return gl.LINES
	case gpu.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func blendFactor(f gpu.BlendFactor) gl.Enum {
	switch f {
	case gpu.FactorZero:
		return gl.ZERO
	case gpu.FactorSrcColor:
		return gl.SRC_COLOR
	case gpu.FactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case gpu.FactorSrcAlpha:
		return gl.SRC_ALPHA
	case gpu.FactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gpu.FactorDstColor:
		return gl.DST_COLOR
	case gpu.FactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case gpu.FactorDstAlpha:
		return gl.DST_ALPHA
	case gpu.FactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	default:
		return gl.ONE
	}
}

func blendEquation(eq gpu.BlendEquation) gl.Enum {
	switch eq {
	case gpu.EquationSubtract:
		return gl.FUNC_SUBTRACT
	case gpu.EquationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	default:
		return gl.FUNC_ADD
	}
}

func depthFunc(fn gpu.DepthFunc) gl.Enum {
	switch fn {
	case gpu.DepthLess:
		return gl.LESS
	case gpu.DepthEqual:
		return gl.EQUAL
	case gpu.DepthGEqual:
		return gl.GEQUAL
	case gpu.DepthGreater:
		return gl.GREATER
	case gpu.DepthNotEqual:
		return gl.NOTEQUAL
	case gpu.DepthAlways:
		return gl.ALWAYS
	case gpu.DepthNever:
		return gl.NEVER
	default:
		return gl.LEQUAL
	}
}
