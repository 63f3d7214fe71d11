package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	mu sync.Mutex

	id        uint64
	enabled   atomic.Bool
	ephemeral bool

	mdl      model.Model
	effect   *mrf.Mrf
	animator animator.Animator
	texture  int32

	position      mgl32.Vec3
	rotation      mgl32.Vec3
	rotationSpeed mgl32.Vec3
	scale         mgl32.Vec3
}

// GameObject is a placed instance of a Model drawn through an Mrf effect. It owns the model
// transform and an optional Animator; several objects may share one Model and one effect.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Ephemeral returns whether this object is ephemeral.
	// Ephemeral objects are drawn for the next frame only and then dropped by the scene.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Effect returns the Mrf the object is drawn with, or nil.
	//
	// Returns:
	//   - *mrf.Mrf: the effect or nil
	Effect() *mrf.Mrf

	// Animator returns the Animator associated with this object, or nil.
	//
	// Returns:
	//   - animator.Animator: the associated Animator, or nil
	Animator() animator.Animator

	// Position returns the world-space position.
	Position() mgl32.Vec3

	// Rotation returns the Euler rotation in radians.
	Rotation() mgl32.Vec3

	// RotationSpeed returns the rotation applied per second by Update.
	RotationSpeed() mgl32.Vec3

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// Transform composes the model matrix from position, rotation and scale.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	Transform() mgl32.Mat4

	// Bounds returns the model bounding box transformed to world space. Returns the zero box
	// when no model is set.
	//
	// Returns:
	//   - common.BoundingBox: the world-space bounds
	Bounds() common.BoundingBox

	// Params returns the per-object inputs for the object's effect.
	//
	// Returns:
	//   - mrf.Params: transform, animation player and texture override
	Params() mrf.Params

	// Update advances the rotation and the animator by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// SetID sets the object's unique identifier.
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	SetModel(m model.Model)

	// SetEffect assigns the Mrf the object is drawn with.
	SetEffect(m *mrf.Mrf)

	// SetAnimator sets the Animator associated with this object.
	SetAnimator(anim animator.Animator)

	// SetTexture overrides the surface texture of passes sampling the object's own texture.
	//
	// Parameters:
	//   - texture: the GPU texture name, or -1 to use each polygon map's surface
	SetTexture(texture int32)

	// SetPosition sets the world-space position.
	SetPosition(p mgl32.Vec3)

	// SetRotation sets the Euler rotation in radians.
	SetRotation(r mgl32.Vec3)

	// SetRotationSpeed sets the rotation applied per second by Update.
	SetRotationSpeed(r mgl32.Vec3)

	// SetScale sets the per-axis scale.
	SetScale(s mgl32.Vec3)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		texture: -1,
		scale:   mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) Effect() *mrf.Mrf {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.effect
}

func (g *gameObject) Animator() animator.Animator {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.animator
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotationSpeed
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) Transform() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.ModelMatrix(g.position, g.rotation, g.scale)
}

func (g *gameObject) Bounds() common.BoundingBox {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mdl == nil {
		return common.BoundingBox{}
	}
	return common.TransformBox(common.ModelMatrix(g.position, g.rotation, g.scale), g.mdl.BoundingBox())
}

func (g *gameObject) Params() mrf.Params {
	g.mu.Lock()
	defer g.mu.Unlock()
	p := mrf.Params{
		Transform: common.ModelMatrix(g.position, g.rotation, g.scale),
		Texture:   g.texture,
	}
	// a nil Animator must stay a nil interface so the draw call binds the null animation
	if g.animator != nil {
		p.Player = g.animator
	}
	return p
}

func (g *gameObject) Update(dt float32) {
	g.mu.Lock()
	g.rotation = g.rotation.Add(g.rotationSpeed.Mul(dt))
	anim := g.animator
	g.mu.Unlock()
	if anim != nil {
		anim.Advance(dt)
	}
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) SetEffect(m *mrf.Mrf) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.effect = m
}

func (g *gameObject) SetAnimator(anim animator.Animator) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.animator = anim
}

func (g *gameObject) SetTexture(texture int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.texture = texture
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) SetRotation(r mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r
}

func (g *gameObject) SetRotationSpeed(r mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = r
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = s
}
