// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Rect is an integer pixel rectangle, used for viewports and framebuffer extents.
type Rect struct {
	// X and Y are the lower-left corner of the rectangle in pixels.
	X, Y int32
	// Width and Height are the extents of the rectangle in pixels.
	Width, Height int32
}

// Empty reports whether the rectangle covers no pixels.
//
// Returns:
//   - bool: true if either extent is zero or negative
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Color is an RGBA color with float components in the [0, 1] range.
type Color [4]float32

// BoundingBox is an axis-aligned box stored as minX, minY, minZ, maxX, maxY, maxZ.
type BoundingBox [6]float32

// Min returns the minimum corner of the box.
//
// Returns:
//   - mgl32.Vec3: the minimum corner
func (b BoundingBox) Min() mgl32.Vec3 {
	return mgl32.Vec3{b[0], b[1], b[2]}
}

// Max returns the maximum corner of the box.
//
// Returns:
//   - mgl32.Vec3: the maximum corner
func (b BoundingBox) Max() mgl32.Vec3 {
	return mgl32.Vec3{b[3], b[4], b[5]}
}

// Center returns the midpoint of the box.
//
// Returns:
//   - mgl32.Vec3: the center point
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min().Add(b.Max()).Mul(0.5)
}

// Corners returns the eight corners of the box. Corner i takes the maximum X when bit 0 of i
// is set, the maximum Y when bit 1 is set and the maximum Z when bit 2 is set.
//
// Returns:
//   - [8]mgl32.Vec3: the box corners
func (b BoundingBox) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		out[i] = mgl32.Vec3{b[0], b[1], b[2]}
		if i&1 != 0 {
			out[i][0] = b[3]
		}
		if i&2 != 0 {
			out[i][1] = b[4]
		}
		if i&4 != 0 {
			out[i][2] = b[5]
		}
	}
	return out
}

// DecodeFixed converts an integer-encoded fixed-point value into a float.
// The encoded value is divided by 2^shiftBits.
//
// Parameters:
//   - v: the encoded integer value
//   - shiftBits: the number of fractional bits used by the encoder
//
// Returns:
//   - float32: the decoded value
func DecodeFixed(v int, shiftBits int) float32 {
	return float32(float64(v) / float64(int64(1)<<uint(shiftBits)))
}
