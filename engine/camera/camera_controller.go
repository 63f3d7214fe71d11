package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the camera's positional state. Orbit methods move the eye on a sphere
// around the target; pan methods translate eye and target together along the camera's local
// axes, so the orbit relationship is preserved.
type CameraController interface {
	// Position returns the eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Target returns the look-at point in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// SetTarget moves the pivot and recomputes the eye from the orbit angles.
	//
	// Parameters:
	//   - target: the new look-at point
	SetTarget(target mgl32.Vec3)

	// Orbit rotates the eye around the target. Elevation is clamped to the controller bounds.
	//
	// Parameters:
	//   - dAzimuth: horizontal rotation in radians
	//   - dElevation: vertical rotation in radians
	Orbit(dAzimuth, dElevation float32)

	// Zoom moves the eye toward the target by delta * ZoomSpeed, clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: positive values zoom in
	Zoom(delta float32)

	// Pan translates eye and target along the local right, up and forward axes.
	//
	// Parameters:
	//   - right: offset along the right axis, scaled by PanSpeed
	//   - up: offset along the up axis, scaled by PanSpeed
	//   - forward: offset along the view direction, scaled by PanSpeed
	Pan(right, up, forward float32)

	// Radius returns the distance between eye and target.
	Radius() float32

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Elevation returns the vertical angle above the horizontal plane in radians.
	Elevation() float32
}
