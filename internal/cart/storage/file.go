package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage keeps one JSON file per key under a base directory. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// half-written cart behind.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (f *FileStorage) Set(key string, value []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) path(key string) string {
	// Keys contain user ids which are opaque strings; keep the filename flat.
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_", ":", "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}
