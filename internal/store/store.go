// Package store provides the key-value persistence boundary. The engine owns
// the serialized layout of each value; this package only moves bytes.
package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Repository is an opaque byte store keyed per document type. Implementations
// must make Put atomic from the caller's point of view: a failed write leaves
// the previous value readable.
type Repository interface {
	// Get returns the stored bytes for key, and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Put replaces the stored bytes for key.
	Put(key string, data []byte) error
}

// FileRepository keeps one file per key under a base directory.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a file-backed repository rooted at dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) path(key string) string {
	return filepath.Join(r.dir, key+".yaml")
}

// Get reads the value stored for key. A missing file is not an error.
func (r *FileRepository) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading store key '%s': %w", key, err)
	}
	return data, true, nil
}

// Put writes the value for key, creating the base directory if needed. The
// write goes through a temporary file and rename so a crash mid-write never
// clobbers the previous value.
func (r *FileRepository) Put(key string, data []byte) error {
	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return fmt.Errorf("error creating store directory: %w", err)
	}

	tmp := r.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("error writing store key '%s': %w", key, err)
	}
	if err := os.Rename(tmp, r.path(key)); err != nil {
		return fmt.Errorf("error committing store key '%s': %w", key, err)
	}
	return nil
}
