package animator

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/go-gl/mathgl/mgl32"
)

// AnimatorBackendType identifies the type of animation backend used by an Animator.
type AnimatorBackendType int

const (
	// BackendTypeStatic binds no animation; the polygon map draws its bind pose.
	BackendTypeStatic AnimatorBackendType = iota

	// BackendTypeSkeletal plays baked bone palettes and uploads them as u_boneMatrices.
	BackendTypeSkeletal
)

// AnimatorBackend is the method set every animation backend implements. Methods that do not
// apply to a backend type are implemented as no-ops.
type AnimatorBackend interface {
	Bind(q queue.RenderQueue)
	SetBoneCount(count int)
	BoneCount() int
	SetBone(index int, m mgl32.Mat4)
	AddClip(c Clip) int
	PlayAnimation(clip int, loop bool)
	SetAnimationTime(t float32)
	SetAnimationSpeed(speed float32)
	Time() float32
	Advance(dt float32)
	Palette() []mgl32.Mat4
}

// staticAnimatorBackend binds the null animation.
type staticAnimatorBackend struct{}

var _ AnimatorBackend = staticAnimatorBackend{}

func newStaticAnimatorBackend() AnimatorBackend {
	return staticAnimatorBackend{}
}

func (staticAnimatorBackend) Bind(q queue.RenderQueue)  { BindNull(q) }
func (staticAnimatorBackend) SetBoneCount(int)          {}
func (staticAnimatorBackend) BoneCount() int            { return 0 }
func (staticAnimatorBackend) SetBone(int, mgl32.Mat4)   {}
func (staticAnimatorBackend) AddClip(Clip) int          { return -1 }
func (staticAnimatorBackend) PlayAnimation(int, bool)   {}
func (staticAnimatorBackend) SetAnimationTime(float32)  {}
func (staticAnimatorBackend) SetAnimationSpeed(float32) {}
func (staticAnimatorBackend) Time() float32             { return 0 }
func (staticAnimatorBackend) Advance(float32)           {}
func (staticAnimatorBackend) Palette() []mgl32.Mat4     { return nil }
