package scene

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gles/engine/camera"
	"github.com/Carmen-Shannon/oxy-gles/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gles/engine/light"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
)

// FrameStats describes the last RegisterDrawCalls of a scene.
type FrameStats struct {
	// Objects is the number of enabled objects that had a model and an effect.
	Objects int
	// Culled is the number of those objects outside the camera frustum.
	Culled int
	// DrawCalls is the number of draw calls registered into the queue.
	DrawCalls int
}

// Scene is a view: a Camera, a RenderQueue and the GameObjects drawn through it. Each frame
// RegisterDrawCalls turns every visible object's effect into draw calls and ExecRender plays
// them back. Scenes can be hot-swapped via the Active flag and are drawn in ZOrder.
// Thread-safe for concurrent access; RegisterDrawCalls and ExecRender belong on the GL thread.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// ZOrder returns the draw order key. Lower values render first.
	ZOrder() int

	// SetZOrder sets the draw order key.
	SetZOrder(z int)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Renderer returns the render context the scene draws with.
	Renderer() renderer.Renderer

	// Queue returns the scene's RenderQueue.
	Queue() queue.RenderQueue

	// SetFog sets the fog uniforms of the scene's queue.
	//
	// Parameters:
	//   - color: fog color
	//   - near: distance where fog starts
	//   - far: distance where fog is opaque
	SetFog(color [3]float32, near, far float32)

	// SetAmbient sets the ambient color the lighting chunk adds to every lit fragment.
	SetAmbient(color [3]float32)

	// AddLight adds a light to the scene. The first enabled light in insertion order becomes
	// the key light uploaded with each frame.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light from the scene. Unknown lights are ignored.
	RemoveLight(l light.Light)

	// Lights returns a copy of the scene's lights in insertion order.
	Lights() []light.Light

	// Resize updates the camera aspect ratio for a new surface size.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	Resize(width, height int)

	// Count returns the number of persisted GameObjects. Does not include ephemeral objects.
	//
	// Returns:
	//   - int: count of non-ephemeral GameObjects
	Count() int

	// CountEphemeral returns the number of ephemeral GameObjects waiting for the next frame.
	//
	// Returns:
	//   - int: count of pending ephemeral GameObjects
	CountEphemeral() int

	// Add adds a GameObject to the scene. Objects without an ID are assigned one. Ephemeral
	// objects are drawn in the next frame only. Objects are drawn in insertion order.
	//
	// Panics if the object has no Model.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a non-ephemeral GameObject by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a non-ephemeral GameObject by ID.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns the persisted objects in draw order.
	Objects() []game_object.GameObject

	// Clear removes all objects. Does not release GPU resources.
	Clear()

	// CullingDisabled returns whether frustum culling is disabled for this scene.
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling.
	//
	// Parameters:
	//   - disabled: true to draw every object regardless of the camera frustum
	SetCullingDisabled(disabled bool)

	// Update advances every object by deltaTime on the scene's worker pool and waits for them.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// RegisterDrawCalls applies the camera to the queue and registers the draw calls of every
	// enabled, visible object. Pending ephemeral objects are consumed. An object whose effect
	// fails is logged and skipped; the errors are joined into the result.
	//
	// Returns:
	//   - FrameStats: what was registered
	//   - error: the joined per-object errors, or nil
	RegisterDrawCalls() (FrameStats, error)

	// ExecRender executes and clears the queued draw calls.
	ExecRender()

	// LastStats returns the stats of the last RegisterDrawCalls.
	LastStats() FrameStats
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	zOrder int

	cam   camera.Camera
	r     renderer.Renderer
	queue queue.RenderQueue

	order     []uint64
	registry  map[uint64]game_object.GameObject
	ephemeral []game_object.GameObject
	nextID    uint64
	lights    []light.Light

	cullingDisabled bool
	last            FrameStats

	// construction-time inputs consumed by NewScene
	initial   []game_object.GameObject
	queueOpts []queue.RenderQueueBuilderOption

	// updatePool runs object updates. Workers persist across frames.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene drawing through r with the given camera. Both are required and
// NewScene panics if either is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the render context (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		cam:           cam,
		r:             r,
		registry:      make(map[uint64]game_object.GameObject),
		nextID:        1,
		updateWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(s)
	}
	s.queue = r.NewRenderQueue(s.queueOpts...)
	for _, obj := range s.initial {
		s.addLocked(obj)
	}
	s.initial, s.queueOpts = nil, nil

	s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) ZOrder() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zOrder
}

func (s *scene) SetZOrder(z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zOrder = z
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Queue() queue.RenderQueue {
	return s.queue
}

func (s *scene) SetFog(color [3]float32, near, far float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetFog(color, near, far)
}

func (s *scene) SetAmbient(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetAmbient(color)
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = slices.DeleteFunc(s.lights, func(o light.Light) bool { return o == l })
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

// keyLight returns the first enabled light, or an unlit key light when there is none.
// Callers hold s.mu.
func (s *scene) keyLight() queue.Light {
	for _, l := range s.lights {
		if l.Enabled() {
			return l.Uniform()
		}
	}
	return queue.Light{}
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.RLock()
	cam := s.cam
	s.mu.RUnlock()
	cam.SetAspect(float32(width) / float32(height))
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) CountEphemeral() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ephemeral)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	if obj.Model() == nil {
		panic("scene: Add requires a GameObject with a Model")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked registers obj. Caller must hold the write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	if obj.Ephemeral() {
		s.ephemeral = append(s.ephemeral, obj)
		return obj.ID()
	}
	if _, exists := s.registry[obj.ID()]; !exists {
		s.order = append(s.order, obj.ID())
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[id]; !ok {
		return
	}
	delete(s.registry, id)
	s.order = slices.DeleteFunc(s.order, func(v uint64) bool { return v == id })
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.registry[id])
	}
	return out
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.registry)
	s.order = s.order[:0]
	s.ephemeral = nil
}

func (s *scene) Update(deltaTime float32) {
	objects := s.Objects()
	s.mu.RLock()
	objects = append(objects, s.ephemeral...)
	s.mu.RUnlock()

	// A WaitGroup provides the per-frame barrier; pool.Wait blocks until workers idle-exit.
	var wg sync.WaitGroup
	for i, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		wg.Add(1)
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				obj.Update(deltaTime)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) RegisterDrawCalls() (FrameStats, error) {
	s.mu.Lock()
	objects := make([]game_object.GameObject, 0, len(s.order)+len(s.ephemeral))
	for _, id := range s.order {
		objects = append(objects, s.registry[id])
	}
	objects = append(objects, s.ephemeral...)
	s.ephemeral = nil
	cam, culling := s.cam, !s.cullingDisabled
	s.queue.SetLight(s.keyLight())
	s.mu.Unlock()

	cam.Update()
	cam.Apply(s.queue)
	frustum := cam.Frustum()

	var stats FrameStats
	var errs []error
	for _, obj := range objects {
		effect, mdl := obj.Effect(), obj.Model()
		if !obj.Enabled() || effect == nil || mdl == nil {
			continue
		}
		stats.Objects++
		if culling && !frustum.IntersectsBox(obj.Bounds()) {
			stats.Culled++
			continue
		}
		n, err := effect.RegisterDrawCalls(s.queue, obj.Params(), mdl)
		stats.DrawCalls += n
		if err != nil {
			log.Printf("[Scene] %s: object %d: %v", s.Name(), obj.ID(), err)
			errs = append(errs, fmt.Errorf("object %d: %w", obj.ID(), err))
		}
	}

	s.mu.Lock()
	s.last = stats
	s.mu.Unlock()
	return stats, errors.Join(errs...)
}

func (s *scene) ExecRender() {
	s.queue.ExecRender()
}

func (s *scene) LastStats() FrameStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
