package game_object

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithEphemeral marks the GameObject as ephemeral. A scene draws an ephemeral object in the
// next frame and then removes it.
//
// Returns:
//   - GameObjectBuilderOption: functional option to mark the object ephemeral
func WithEphemeral() GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.ephemeral = true
	}
}

// WithModel sets the Model the object draws.
//
// Parameters:
//   - m: the model
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithEffect sets the Mrf the object is drawn with.
//
// Parameters:
//   - m: the effect
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the effect
func WithEffect(m *mrf.Mrf) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.effect = m
	}
}

// WithAnimator sets the Animator bound for the object's polygon map draws.
//
// Parameters:
//   - anim: the animator
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Animator
func WithAnimator(anim animator.Animator) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.animator = anim
	}
}

// WithTexture overrides the object's surface texture.
//
// Parameters:
//   - texture: the GPU texture name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the texture override
func WithTexture(texture int32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.texture = texture
	}
}

// WithPosition sets the initial world-space position of the GameObject.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}

// WithRotation sets the initial Euler rotation of the GameObject in radians.
//
// Parameters:
//   - r: the rotation
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(r mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = r
	}
}

// WithRotationSpeed sets the rotation applied per second by Update.
//
// Parameters:
//   - r: radians per second around each axis
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(r mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotationSpeed = r
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - s: the per-axis scale
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(s mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = s
	}
}
