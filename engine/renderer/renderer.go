package renderer

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/drawcall"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/geometry"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
)

// Stats describes one rendered frame.
type Stats struct {
	// DrawCalls is the number of draw calls acquired during the frame.
	DrawCalls int

	// Issued and Skipped count the state changes the binder sent to the device and deduplicated.
	Issued, Skipped int

	// TargetsUsed is the number of offscreen targets rendered into.
	TargetsUsed int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	device  gpu.Device
	binder  binder.Binder
	shaders *shader.Registry
	shapes  *geometry.Shapes
	pool    *drawcall.Pool
	targets *target.Pool

	width, height int

	// Pre-creation config collected from builder options
	drawCallCapacity int
	queueCapacity    int
	maxParticles     int
	targetOptions    []target.PoolBuilderOption
	shaderOptions    []shader.RegistryBuilderOption
	logf             func(format string, args ...any)

	// Requests from other goroutines, applied by BeginFrame
	pendingSize   *[2]int
	pendingResume bool

	last Stats
}

// Renderer is the render context. It owns every resource shared by the queues and effects of a
// frame: the device, the binding cache, the shader registry, the built-in shapes, the draw call
// pool and the shared offscreen targets.
//
// All methods except Resize, Resume and LastStats belong on the render goroutine. A frame is
// BeginFrame, any number of queue executions, then exactly one Flush.
type Renderer interface {
	// Device returns the GPU device the renderer drives.
	Device() gpu.Device

	// Binder returns the binding cache every queue of this renderer shares.
	Binder() binder.Binder

	// Shaders returns the shader program registry.
	Shaders() *shader.Registry

	// Shapes returns the built-in full-screen quad, box and particle meshes.
	Shapes() *geometry.Shapes

	// Targets returns the shared offscreen render targets.
	Targets() *target.Pool

	// DrawCallPool returns the frame-scoped draw call pool.
	DrawCallPool() *drawcall.Pool

	// RegisterShader compiles and registers a program under "{vertexName}_{fragmentName}".
	// Registering an existing key returns the existing program.
	//
	// Parameters:
	//   - vertexName: the vertex shader name
	//   - fragmentName: the fragment shader name
	//   - vertexSource: the vertex shader GLSL
	//   - fragmentSource: the fragment shader GLSL
	//
	// Returns:
	//   - int: the program id, or -1 on failure
	//   - error: the pre-processing, compile or link error
	RegisterShader(vertexName, fragmentName, vertexSource, fragmentSource string) (int, error)

	// NewRenderQueue creates a queue drawing through this renderer's binder and shapes.
	//
	// Parameters:
	//   - options: functional options applied after the renderer's defaults
	//
	// Returns:
	//   - queue.RenderQueue: the queue
	NewRenderQueue(options ...queue.RenderQueueBuilderOption) queue.RenderQueue

	// AcquirePolygonMap returns a reset draw call drawing pm.
	AcquirePolygonMap(pm model.PolygonMap) (*drawcall.DrawCall, error)

	// AcquireBox returns a reset draw call drawing the outline of box.
	AcquireBox(box common.BoundingBox) (*drawcall.DrawCall, error)

	// AcquireParticles returns a reset draw call drawing count particles.
	AcquireParticles(count int) (*drawcall.DrawCall, error)

	// AcquireFullScreen returns a reset draw call drawing a full-screen quad.
	AcquireFullScreen() (*drawcall.DrawCall, error)

	// AcquireClear returns a reset draw call clearing its framebuffer.
	AcquireClear(mode gpu.ClearMode, color common.Color) (*drawcall.DrawCall, error)

	// CreateFBO allocates a framebuffer with no attachments.
	//
	// Parameters:
	//   - width: the viewport width
	//   - height: the viewport height
	//
	// Returns:
	//   - *gpu.Framebuffer: the framebuffer
	CreateFBO(width, height int) *gpu.Framebuffer

	// NewTexture creates a color texture suitable for SetFBOTexture.
	//
	// Parameters:
	//   - width: the texture width
	//   - height: the texture height
	//
	// Returns:
	//   - uint32: the texture name
	NewTexture(width, height int) uint32

	// SetFBOTexture attaches texture to fb and optionally creates a depth buffer. The screen
	// is bound again afterwards.
	//
	// Parameters:
	//   - fb: the framebuffer
	//   - texture: the color texture
	//   - createDepth: whether to attach a depth buffer
	SetFBOTexture(fb *gpu.Framebuffer, texture uint32, createDepth bool)

	// FboUsed returns the per-frame used flags of the shared targets, indexable by target.TexType.
	FboUsed() []bool

	// NewMrf creates an uninitialized effect bound to this renderer's resources.
	NewMrf() *mrf.Mrf

	// LoadMrf parses doc into a new effect. Failures are reported through the log callback.
	//
	// Parameters:
	//   - doc: the render settings document
	//   - skipUniformBinding: defer program and uniform resolution to Mrf.SetUniforms
	//
	// Returns:
	//   - *mrf.Mrf: the effect, or nil on failure
	//   - error: the parse error
	LoadMrf(doc []byte, skipUniformBinding bool) (*mrf.Mrf, error)

	// Resize records a new screen size. The screen viewport changes at the next BeginFrame;
	// the shared targets keep the size they were created with. Safe from any goroutine.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Resume records that the GPU state may have been changed outside the renderer, for example
	// after the application regained its context. The binder resynchronizes every state at the
	// next BeginFrame. Safe from any goroutine.
	Resume()

	// BeginFrame applies pending Resize and Resume requests and binds the screen.
	BeginFrame()

	// Flush ends the frame: it resets the draw call pool and the target used flags. It must run
	// exactly once per frame, after every queue has executed.
	//
	// Returns:
	//   - Stats: the statistics of the frame that ended
	Flush() Stats

	// LastStats returns the statistics of the last flushed frame. Safe from any goroutine.
	LastStats() Stats

	// Width returns the screen width in pixels.
	Width() int

	// Height returns the screen height in pixels.
	Height() int
}

var _ Renderer = &renderer{}

// NewRenderer creates the render context and allocates every shared resource. It issues GPU
// calls, so the surface's context must be usable from the calling goroutine.
//
// Parameters:
//   - surface: the surface providing the device and the initial screen size; may be nil with WithDevice
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the render context
func NewRenderer(surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:               &sync.Mutex{},
		drawCallCapacity: drawcall.DefaultCapacity,
		queueCapacity:    queue.DefaultCapacity,
		logf:             log.Printf,
	}
	if surface != nil {
		r.width, r.height = surface.Width(), surface.Height()
	}

	for _, opt := range options {
		opt(r)
	}

	if r.device == nil && surface != nil {
		r.device = surface.Device()
	}
	if r.device == nil {
		panic("renderer: NewRenderer requires a surface with a device or WithDevice")
	}

	screen := common.Rect{Width: int32(r.width), Height: int32(r.height)}
	r.shaders = shader.NewRegistry(r.device, r.shaderOptions...)
	r.binder = binder.NewBinder(r.device, r.shaders, binder.WithScreenViewport(screen))

	var shapeOptions []geometry.ShapesBuilderOption
	if r.maxParticles > 0 {
		shapeOptions = append(shapeOptions, geometry.WithMaxParticles(r.maxParticles))
	}
	r.shapes = geometry.NewShapes(r.binder, shapeOptions...)
	r.pool = drawcall.NewPool(r.drawCallCapacity)
	r.targets = target.NewPool(r.binder, r.width, r.height, r.targetOptions...)
	return r
}

func (r *renderer) Device() gpu.Device {
	return r.device
}

func (r *renderer) Binder() binder.Binder {
	return r.binder
}

func (r *renderer) Shaders() *shader.Registry {
	return r.shaders
}

func (r *renderer) Shapes() *geometry.Shapes {
	return r.shapes
}

func (r *renderer) Targets() *target.Pool {
	return r.targets
}

func (r *renderer) DrawCallPool() *drawcall.Pool {
	return r.pool
}

func (r *renderer) RegisterShader(vertexName, fragmentName, vertexSource, fragmentSource string) (int, error) {
	id, err := r.shaders.Register(vertexName, fragmentName, vertexSource, fragmentSource)
	if err != nil {
		r.logf("[Renderer] shader %s: %v", shader.Key(vertexName, fragmentName), err)
	}
	return id, err
}

func (r *renderer) NewRenderQueue(options ...queue.RenderQueueBuilderOption) queue.RenderQueue {
	opts := append([]queue.RenderQueueBuilderOption{
		queue.WithShapes(r.shapes),
		queue.WithCapacity(r.queueCapacity),
	}, options...)
	return queue.NewRenderQueue(r.binder, opts...)
}

func (r *renderer) AcquirePolygonMap(pm model.PolygonMap) (*drawcall.DrawCall, error) {
	return r.pool.AcquirePolygonMap(pm)
}

func (r *renderer) AcquireBox(box common.BoundingBox) (*drawcall.DrawCall, error) {
	return r.pool.AcquireBox(box)
}

func (r *renderer) AcquireParticles(count int) (*drawcall.DrawCall, error) {
	return r.pool.AcquireParticles(count)
}

func (r *renderer) AcquireFullScreen() (*drawcall.DrawCall, error) {
	return r.pool.AcquireFullScreen()
}

func (r *renderer) AcquireClear(mode gpu.ClearMode, color common.Color) (*drawcall.DrawCall, error) {
	return r.pool.AcquireClear(mode, color)
}

func (r *renderer) CreateFBO(width, height int) *gpu.Framebuffer {
	return r.targets.CreateFBO(width, height)
}

func (r *renderer) NewTexture(width, height int) uint32 {
	return r.targets.NewTexture(width, height)
}

func (r *renderer) SetFBOTexture(fb *gpu.Framebuffer, texture uint32, createDepth bool) {
	r.targets.SetFBOTexture(fb, texture, createDepth)
	r.binder.BindFramebuffer(nil)
}

func (r *renderer) FboUsed() []bool {
	return r.targets.Used()
}

func (r *renderer) NewMrf() *mrf.Mrf {
	return mrf.NewMrf(r.shaders, r.pool, r.targets)
}

func (r *renderer) LoadMrf(doc []byte, skipUniformBinding bool) (*mrf.Mrf, error) {
	m := r.NewMrf()
	if err := m.Load(doc, skipUniformBinding); err != nil {
		r.logf("[Mrf] load failed: %v", err)
		return nil, err
	}
	return m, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingSize = &[2]int{width, height}
}

func (r *renderer) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingResume = true
}

func (r *renderer) BeginFrame() {
	r.mu.Lock()
	size, resume := r.pendingSize, r.pendingResume
	r.pendingSize, r.pendingResume = nil, false
	if size != nil {
		r.width, r.height = size[0], size[1]
	}
	r.mu.Unlock()

	if resume {
		r.binder.ForceResyncAll()
	}
	if size != nil {
		r.binder.SetScreenViewport(common.Rect{Width: int32(size[0]), Height: int32(size[1])})
	}
	r.binder.BindFramebuffer(nil)
}

func (r *renderer) Flush() Stats {
	b := r.binder.Stats()
	s := Stats{
		DrawCalls: r.pool.Next(),
		Issued:    b.Issued,
		Skipped:   b.Skipped,
	}
	for _, used := range r.targets.Used() {
		if used {
			s.TargetsUsed++
		}
	}

	r.pool.Reset()
	r.targets.ResetUsed()
	r.binder.ResetStats()

	r.mu.Lock()
	r.last = s
	r.mu.Unlock()
	return s
}

func (r *renderer) LastStats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

func (r *renderer) Height() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.height
}
