package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// NearFar recovers the near and far clipping distances from an OpenGL style projection matrix.
// Both perspective (m[15] == 0) and orthographic (m[15] == 1) projections are handled.
//
// Parameters:
//   - proj: the projection matrix (column-major)
//
// Returns:
//   - near: the near plane distance
//   - far: the far plane distance
func NearFar(proj mgl32.Mat4) (near, far float32) {
	m10, m14 := proj[10], proj[14]
	if proj[15] == 0 {
		// perspective: m10 = (f+n)/(n-f), m14 = 2fn/(n-f)
		if m10 == 1 || m10 == -1 {
			return 0, 0
		}
		return m14 / (m10 - 1), m14 / (m10 + 1)
	}
	if m10 == 0 {
		return 0, 0
	}
	// orthographic: m10 = -2/(f-n), m14 = -(f+n)/(f-n)
	return (m14 + 1) / m10, (m14 - 1) / m10
}

// ModelMatrix constructs a model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll).
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the composed model matrix
func ModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rot[1]).
		Mul4(mgl32.HomogRotate3DX(rot[0])).
		Mul4(mgl32.HomogRotate3DZ(rot[2]))
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(r).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// TransformBox transforms the eight corners of b by m and returns their axis-aligned bounds.
//
// Parameters:
//   - m: the transform to apply
//   - b: the box in local space
//
// Returns:
//   - BoundingBox: the transformed box
func TransformBox(m mgl32.Mat4, b BoundingBox) BoundingBox {
	corners := b.Corners()
	first := m.Mul4x1(corners[0].Vec4(1)).Vec3()
	out := BoundingBox{first[0], first[1], first[2], first[0], first[1], first[2]}
	for _, c := range corners[1:] {
		p := m.Mul4x1(c.Vec4(1)).Vec3()
		for axis := 0; axis < 3; axis++ {
			out[axis] = min(out[axis], p[axis])
			out[axis+3] = max(out[axis+3], p[axis])
		}
	}
	return out
}
