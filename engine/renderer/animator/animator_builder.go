package animator

import "github.com/go-gl/mathgl/mgl32"

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithBindPose is an option builder that sets the bone palette used while no clip plays.
//
// Parameters:
//   - bones: the bind pose matrices, one per bone
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the bind pose option to an animator
func WithBindPose(bones []mgl32.Mat4) AnimatorBuilderOption {
	return func(a *animator) {
		a.backend.SetBoneCount(len(bones))
		for i, m := range bones {
			a.backend.SetBone(i, m)
		}
	}
}

// WithClips is an option builder that registers clips on the animator.
//
// Parameters:
//   - clips: the clips, indexed in order
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the clips option to an animator
func WithClips(clips ...Clip) AnimatorBuilderOption {
	return func(a *animator) {
		for _, c := range clips {
			a.backend.AddClip(c)
		}
	}
}
