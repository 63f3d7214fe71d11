package animator

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxBones is the size of the bone palette declared by the skinning shader chunk.
const MaxBones = 32

// Player binds animation state for a polygon map right before it draws.
type Player interface {
	// Bind uploads the animation uniforms of the current program.
	//
	// Parameters:
	//   - q: the queue executing the draw call
	Bind(q queue.RenderQueue)
}

// BindNull marks the current program as unanimated by uploading a zero bone count.
//
// Parameters:
//   - q: the queue executing the draw call
func BindNull(q queue.RenderQueue) {
	p := q.Binder().CurrentProgram()
	if p == nil {
		return
	}
	if loc := p.Location(shader.UniformBoneCount); loc >= 0 {
		q.Binder().Device().UniformInt(loc, 0)
	}
}

// Frame is one baked pose of a clip: the full bone palette at Time.
type Frame struct {
	Time    float32
	Palette []mgl32.Mat4
}

// Clip is a sequence of baked poses sorted by time.
type Clip struct {
	Name     string
	Duration float32
	Frames   []Frame
}

// animator is the implementation of the Animator interface.
type animator struct {
	backendType AnimatorBackendType
	backend     AnimatorBackend
}

// Animator is a Player with playback state. It delegates to an AnimatorBackend: the static
// backend binds no animation, the skeletal backend plays baked bone palettes.
//
// Methods specific to the skeletal backend no-op on the static backend. Advance may run on a
// game update goroutine while Bind runs on the GL thread.
type Animator interface {
	Player

	// BackendType returns the type of backend this animator is using.
	//
	// Returns:
	//   - AnimatorBackendType: BackendTypeStatic or BackendTypeSkeletal
	BackendType() AnimatorBackendType

	// SetBoneCount sizes the bind pose palette, resetting every bone to identity.
	//
	// Parameters:
	//   - count: the number of bones, clamped to MaxBones
	SetBoneCount(count int)

	// BoneCount returns the number of bones.
	BoneCount() int

	// SetBone sets the bind pose matrix of one bone, used while no clip plays.
	//
	// Parameters:
	//   - index: the bone index
	//   - m: the bone matrix
	SetBone(index int, m mgl32.Mat4)

	// AddClip registers a clip.
	//
	// Parameters:
	//   - c: the clip
	//
	// Returns:
	//   - int: the clip index
	AddClip(c Clip) int

	// PlayAnimation starts clip from time zero. An unknown index stops playback.
	//
	// Parameters:
	//   - clip: the clip index
	//   - loop: whether playback wraps at the clip duration
	PlayAnimation(clip int, loop bool)

	// SetAnimationTime moves the playhead.
	SetAnimationTime(t float32)

	// SetAnimationSpeed scales Advance.
	SetAnimationSpeed(speed float32)

	// Time returns the playhead.
	Time() float32

	// Advance moves the playhead by dt scaled by the playback speed.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Advance(dt float32)

	// Palette returns a copy of the palette Bind would upload.
	Palette() []mgl32.Mat4
}

var _ Animator = &animator{}

// NewAnimator creates an Animator with the given backend.
//
// Parameters:
//   - backendType: the backend to use
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the animator
func NewAnimator(backendType AnimatorBackendType, options ...AnimatorBuilderOption) Animator {
	a := &animator{backendType: backendType}
	switch backendType {
	case BackendTypeSkeletal:
		a.backend = newSkeletalAnimatorBackend()
	default:
		a.backendType = BackendTypeStatic
		a.backend = newStaticAnimatorBackend()
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) Bind(q queue.RenderQueue) {
	a.backend.Bind(q)
}

func (a *animator) BackendType() AnimatorBackendType {
	return a.backendType
}

func (a *animator) SetBoneCount(count int) {
	a.backend.SetBoneCount(count)
}

func (a *animator) BoneCount() int {
	return a.backend.BoneCount()
}

func (a *animator) SetBone(index int, m mgl32.Mat4) {
	a.backend.SetBone(index, m)
}

func (a *animator) AddClip(c Clip) int {
	return a.backend.AddClip(c)
}

func (a *animator) PlayAnimation(clip int, loop bool) {
	a.backend.PlayAnimation(clip, loop)
}

func (a *animator) SetAnimationTime(t float32) {
	a.backend.SetAnimationTime(t)
}

func (a *animator) SetAnimationSpeed(speed float32) {
	a.backend.SetAnimationSpeed(speed)
}

func (a *animator) Time() float32 {
	return a.backend.Time()
}

func (a *animator) Advance(dt float32) {
	a.backend.Advance(dt)
}

func (a *animator) Palette() []mgl32.Mat4 {
	return a.backend.Palette()
}
