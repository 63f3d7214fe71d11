package loader

import (
	"fmt"
	"io/fs"
	"log"
	"maps"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
)

// LoaderBackendType identifies where LoadFile reads documents from.
type LoaderBackendType int

const (
	// BackendTypeFile reads documents from the OS file system.
	BackendTypeFile LoaderBackendType = iota
	// BackendTypeFS reads documents from the fs.FS given with WithFS.
	BackendTypeFS
)

// Result is the outcome of one background load, reported by Drain.
type Result struct {
	// Name is the cache key the load was submitted under.
	Name string
	// Mrf is the ready effect, nil on failure.
	Mrf *mrf.Mrf
	// Err is the read, parse or binding error.
	Err error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.Mutex

	renderer renderer.Renderer
	backend  loaderBackend
	fsys     fs.FS

	workers int
	pool    worker.DynamicWorkerPool
	wg      sync.WaitGroup
	nextID  int

	cache    map[string]*mrf.Mrf
	pending  int
	finished []Result
}

// Loader parses render settings documents on background workers and completes them on the GL
// goroutine. Parsing needs no GPU access, so workers load every effect with uniform binding
// deferred; Drain then binds programs and uniforms on the calling goroutine and caches the effect.
type Loader interface {
	// Load submits doc for background parsing under name. The document is not copied; the
	// caller must not modify it until Drain reported the result.
	//
	// Parameters:
	//   - name: the cache key
	//   - doc: the render settings document
	Load(name string, doc []byte)

	// LoadFile reads path through the loader backend and parses it in the background. The cache
	// key is the file name without its extension.
	//
	// Parameters:
	//   - path: the document path
	//
	// Returns:
	//   - string: the cache key the effect will be stored under
	LoadFile(path string) string

	// Drain completes every finished load: it binds programs and uniforms, caches the effects
	// and returns the results. It must run on the GL goroutine, typically once per frame.
	//
	// Returns:
	//   - []Result: the loads completed since the last Drain, in completion order
	Drain() []Result

	// Wait blocks until every submitted load has been parsed. Drain still has to run.
	Wait()

	// Pending returns the number of loads submitted and not yet drained.
	Pending() int

	// Get retrieves a cached effect by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *mrf.Mrf: the cached effect or nil
	Get(name string) *mrf.Mrf

	// Mrfs returns a copy of the effect cache.
	//
	// Returns:
	//   - map[string]*mrf.Mrf: all cached effects keyed by name
	Mrfs() map[string]*mrf.Mrf
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: where LoadFile reads documents from
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers: 2,
		cache:   make(map[string]*mrf.Mrf),
	}
	for _, option := range options {
		option(l)
	}
	if l.renderer == nil {
		panic("loader: NewLoader requires WithRenderer")
	}

	switch backendType {
	case BackendTypeFS:
		if l.fsys == nil {
			panic("loader: BackendTypeFS requires WithFS")
		}
		l.backend = fsLoaderBackend{fsys: l.fsys}
	case BackendTypeFile:
		fallthrough
	default:
		l.backend = fileLoaderBackend{}
	}
	l.pool = worker.NewDynamicWorkerPool(max(l.workers, 1), 256, 1*time.Second)
	return l
}

func (l *loader) Load(name string, doc []byte) {
	l.submit(name, func() ([]byte, error) { return doc, nil })
}

func (l *loader) LoadFile(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l.submit(name, func() ([]byte, error) {
		data, err := l.backend.Read(path)
		if err != nil {
			return nil, fmt.Errorf("loader: %w", err)
		}
		return data, nil
	})
	return name
}

// submit parses the document returned by read on the worker pool.
func (l *loader) submit(name string, read func() ([]byte, error)) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.pending++
	l.mu.Unlock()

	l.wg.Add(1)
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.wg.Done()

			res := Result{Name: name}
			doc, err := read()
			if err == nil {
				m := l.renderer.NewMrf()
				if err = m.Load(doc, true); err == nil {
					res.Mrf = m
				}
			}
			res.Err = err

			l.mu.Lock()
			l.finished = append(l.finished, res)
			l.mu.Unlock()
			return nil, err
		},
	})
}

func (l *loader) Drain() []Result {
	l.mu.Lock()
	done := l.finished
	l.finished = nil
	l.pending -= len(done)
	l.mu.Unlock()

	for i := range done {
		res := &done[i]
		if res.Err == nil {
			res.Err = res.Mrf.SetUniforms()
		}
		if res.Err != nil {
			log.Printf("[Loader] %s: %v", res.Name, res.Err)
			res.Mrf = nil
			continue
		}
		l.mu.Lock()
		l.cache[res.Name] = res.Mrf
		l.mu.Unlock()
	}
	return done
}

func (l *loader) Wait() {
	l.wg.Wait()
}

func (l *loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

func (l *loader) Get(name string) *mrf.Mrf {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache[name]
}

func (l *loader) Mrfs() map[string]*mrf.Mrf {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.cache)
}
