package loader

import (
	"io/fs"
	"os"
)

// loaderBackend reads render settings documents by name. Concrete implementations decide where
// the bytes come from (the OS file system, an embedded fs.FS, ...).
type loaderBackend interface {
	// Read returns the document stored at path.
	//
	// Parameters:
	//   - path: the document path
	//
	// Returns:
	//   - []byte: the document
	//   - error: error if reading fails
	Read(path string) ([]byte, error)
}

// fileLoaderBackend reads documents from the OS file system.
type fileLoaderBackend struct{}

func (fileLoaderBackend) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// fsLoaderBackend reads documents from an fs.FS.
type fsLoaderBackend struct {
	fsys fs.FS
}

func (b fsLoaderBackend) Read(path string) ([]byte, error) {
	return fs.ReadFile(b.fsys, path)
}
