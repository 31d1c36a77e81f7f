package store

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
)

// FileStore is an on-disk Store implementation for the CLI demo and
// integration tests, keeping one file per key under a root directory (spec
// §6's Store is otherwise backend-agnostic; a real deployment would back it
// with browser storage or a database instead).
type FileStore struct {
	root string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{root: dir}, nil
}

// keyPath base64url-encodes key so arbitrary key strings (party IDs,
// session IDs) never collide with path separators or traversal sequences.
func (f *FileStore) keyPath(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(f.root, name+".json")
}

// Get reads the record for key, returning ok=false if it does not exist.
func (f *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set writes the record for key, overwriting any existing one.
func (f *FileStore) Set(ctx context.Context, key string, value []byte) error {
	return os.WriteFile(f.keyPath(key), value, 0o600)
}

// Delete removes the record for key, succeeding even if it never existed.
func (f *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every record under the store's root directory.
func (f *FileStore) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(f.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(f.root, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

var _ Store = (*FileStore)(nil)
