package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gles/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/mrf"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRenderer is an option builder that sets the Renderer the loaded effects draw with.
//
// Parameters:
//   - r: the renderer instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the renderer option to a loader
func WithRenderer(r renderer.Renderer) LoaderBuilderOption {
	return func(l *loader) {
		l.renderer = r
	}
}

// WithWorkers sets the number of background goroutines parsing documents.
//
// Parameters:
//   - n: the worker count, 2 by default
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// WithFS makes LoadFile read from fsys. It only applies to loaders created with BackendTypeFS.
//
// Parameters:
//   - fsys: the file system
//
// Returns:
//   - LoaderBuilderOption: a function that applies the file system option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithMrf is an option builder that pre-populates the effect cache.
//
// Parameters:
//   - key: the cache key for the effect
//   - m: the effect to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the effect option to a loader
func WithMrf(key string, m *mrf.Mrf) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = m
	}
}
