package shader

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
)

// ErrUnknownProgram is returned when a program id or key is not registered.
var ErrUnknownProgram = errors.New("shader: unknown program")

// Key builds the lookup key of a vertex/fragment pair.
//
// Parameters:
//   - vertex: the vertex shader name
//   - fragment: the fragment shader name
//
// Returns:
//   - string: "{vertex}_{fragment}"
func Key(vertex, fragment string) string {
	return vertex + "_" + fragment
}

// Registry owns every linked program of a render context and the table of custom uniform slots.
// Lookups are safe from any goroutine; Register and RegisterCustomUniform issue GPU calls and
// must run on the GL thread.
type Registry struct {
	mu     *sync.RWMutex
	device gpu.Device
	pp     PreProcessor

	programs []*Program
	byKey    map[string]int

	slots     map[string]int
	slotNames []string
}

// NewRegistry creates an empty registry issuing its GPU calls through device.
//
// Parameters:
//   - device: the GPU device
//   - options: functional options to configure the registry
//
// Returns:
//   - *Registry: the registry
func NewRegistry(device gpu.Device, options ...RegistryBuilderOption) *Registry {
	if device == nil {
		panic("shader: NewRegistry requires a non-nil gpu.Device")
	}
	r := &Registry{
		mu:     &sync.RWMutex{},
		device: device,
		pp:     NewPreProcessor(),
		byKey:  make(map[string]int),
		slots:  make(map[string]int),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Register pre-processes, compiles and links a vertex/fragment pair under Key(vertexName, fragmentName).
// Registering an existing key returns the existing id without recompiling.
//
// Parameters:
//   - vertexName: the vertex shader name
//   - fragmentName: the fragment shader name
//   - vertexSource: GLSL ES vertex source
//   - fragmentSource: GLSL ES fragment source
//
// Returns:
//   - int: the program id
//   - error: an error if pre-processing, compilation or linking fails
func (r *Registry) Register(vertexName, fragmentName, vertexSource, fragmentSource string) (int, error) {
	key := Key(vertexName, fragmentName)

	r.mu.RLock()
	id, exists := r.byKey[key]
	r.mu.RUnlock()
	if exists {
		return id, nil
	}

	vs, err := r.pp.Process(vertexSource, StageVertex)
	if err != nil {
		return -1, fmt.Errorf("shader %q: %w", vertexName, err)
	}
	fs, err := r.pp.Process(fragmentSource, StageFragment)
	if err != nil {
		return -1, fmt.Errorf("shader %q: %w", fragmentName, err)
	}
	handle, err := r.device.CreateProgram(vs, fs)
	if err != nil {
		return -1, fmt.Errorf("program %q: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	id = len(r.programs)
	p := newProgram(r.device, id, key, handle)
	r.programs = append(r.programs, p)
	r.byKey[key] = id
	return id, nil
}

// Lookup returns the id registered under key, or -1.
//
// Parameters:
//   - key: the "{vertex}_{fragment}" key
//
// Returns:
//   - int: the program id or -1
func (r *Registry) Lookup(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.byKey[key]; ok {
		return id
	}
	return -1
}

// Program returns the program with the given id, or nil. Id -1 is never registered.
//
// Parameters:
//   - id: the program id
//
// Returns:
//   - *Program: the program or nil
func (r *Registry) Program(id int) *Program {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || id >= len(r.programs) {
		return nil
	}
	return r.programs[id]
}

// Len returns the number of registered programs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.programs)
}

// Slot returns the custom uniform slot of name, allocating it if needed.
// Slots are shared by every program of the registry.
//
// Parameters:
//   - name: the GLSL uniform name
//
// Returns:
//   - int: the slot id
func (r *Registry) Slot(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slotLocked(name)
}

func (r *Registry) slotLocked(name string) int {
	if slot, ok := r.slots[name]; ok {
		return slot
	}
	slot := len(r.slotNames)
	r.slots[name] = slot
	r.slotNames = append(r.slotNames, name)
	return slot
}

// SlotName returns the uniform name of a slot, or "" if unknown.
func (r *Registry) SlotName(slot int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if slot < 0 || slot >= len(r.slotNames) {
		return ""
	}
	return r.slotNames[slot]
}

// RegisterCustomUniform resolves name's location in the program and records it under the
// uniform's slot. An unknown program id still allocates the slot; the uniform is then uploaded
// nowhere, which mirrors the GPU's own tolerance of location -1.
//
// Parameters:
//   - programID: the program id
//   - name: the GLSL uniform name
//
// Returns:
//   - int: the slot id
//   - error: ErrUnknownProgram if programID is not registered
func (r *Registry) RegisterCustomUniform(programID int, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot := r.slotLocked(name)
	if programID < 0 || programID >= len(r.programs) {
		return slot, fmt.Errorf("uniform %q on program %d: %w", name, programID, ErrUnknownProgram)
	}
	p := r.programs[programID]
	if _, ok := p.custom[slot]; !ok {
		p.custom[slot] = r.device.UniformLocation(p.handle, name)
	}
	return slot, nil
}
