package animator

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// skeletalAnimatorBackendImpl plays baked palettes. Frames are sampled without interpolation:
// the last frame whose time is not after the playhead is uploaded.
type skeletalAnimatorBackendImpl struct {
	mu *sync.Mutex

	bindPose []mgl32.Mat4
	clips    []Clip

	clip        int
	loop        bool
	time, speed float32
}

var _ AnimatorBackend = &skeletalAnimatorBackendImpl{}

func newSkeletalAnimatorBackend() AnimatorBackend {
	return &skeletalAnimatorBackendImpl{
		mu:    &sync.Mutex{},
		clip:  -1,
		speed: 1,
	}
}

func (s *skeletalAnimatorBackendImpl) Bind(q queue.RenderQueue) {
	p := q.Binder().CurrentProgram()
	if p == nil {
		return
	}
	palette := s.Palette()
	d := q.Binder().Device()
	if loc := p.Location(shader.UniformBoneMatrices); loc >= 0 && len(palette) > 0 {
		d.UniformMatrices(loc, palette)
	}
	if loc := p.Location(shader.UniformBoneCount); loc >= 0 {
		d.UniformInt(loc, int32(len(palette)))
	}
}

func (s *skeletalAnimatorBackendImpl) SetBoneCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count = min(max(count, 0), MaxBones)
	s.bindPose = make([]mgl32.Mat4, count)
	for i := range s.bindPose {
		s.bindPose[i] = mgl32.Ident4()
	}
}

func (s *skeletalAnimatorBackendImpl) BoneCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bindPose)
}

func (s *skeletalAnimatorBackendImpl) SetBone(index int, m mgl32.Mat4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.bindPose) {
		return
	}
	s.bindPose[index] = m
}

func (s *skeletalAnimatorBackendImpl) AddClip(c Clip) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips = append(s.clips, c)
	return len(s.clips) - 1
}

func (s *skeletalAnimatorBackendImpl) PlayAnimation(clip int, loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if clip < 0 || clip >= len(s.clips) {
		s.clip = -1
		return
	}
	s.clip = clip
	s.loop = loop
	s.time = 0
}

func (s *skeletalAnimatorBackendImpl) SetAnimationTime(t float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.time = t
	s.wrap()
}

func (s *skeletalAnimatorBackendImpl) SetAnimationSpeed(speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = speed
}

func (s *skeletalAnimatorBackendImpl) Time() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

func (s *skeletalAnimatorBackendImpl) Advance(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clip < 0 {
		return
	}
	s.time += dt * s.speed
	s.wrap()
}

// wrap keeps the playhead inside the clip. Caller holds mu.
func (s *skeletalAnimatorBackendImpl) wrap() {
	if s.clip < 0 {
		return
	}
	d := s.clips[s.clip].Duration
	if d <= 0 {
		s.time = 0
		return
	}
	if s.loop {
		s.time = float32(math.Mod(float64(s.time), float64(d)))
		if s.time < 0 {
			s.time += d
		}
		return
	}
	s.time = min(max(s.time, 0), d)
}

func (s *skeletalAnimatorBackendImpl) Palette() []mgl32.Mat4 {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.bindPose
	if s.clip >= 0 {
		frames := s.clips[s.clip].Frames
		for i := len(frames) - 1; i >= 0; i-- {
			if frames[i].Time <= s.time {
				src = frames[i].Palette
				break
			}
		}
	}
	n := min(len(src), MaxBones)
	out := make([]mgl32.Mat4, n)
	copy(out, src[:n])
	return out
}
