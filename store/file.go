package store

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// File keeps one file per key in a directory.
type File struct {
	dir string
	ext string
}

var _ Store = (*File)(nil)

// NewFile creates a File store, ensuring the directory exists.
// ext is appended to every file name, e.g. ".json".
func NewFile(dir, ext string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &File{dir: dir, ext: ext}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+f.ext)
}

func (f *File) Get(key string) (string, bool, error) {
	fn := f.path(key)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", fn, err)
	}

	return string(data), true, nil
}

// Set writes to a temporary file first, a crash never leaves a half written value behind.
func (f *File) Set(key, value string) error {
	fn := f.path(key)

	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", fn, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}

	if err := os.Rename(tmp.Name(), fn); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (f *File) Remove(key string) error {
	fn := f.path(key)
	if err := os.Remove(fn); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", fn, err)
	}
	return nil
}
