// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local mirrors objects into a directory tree on the local filesystem.
type Local struct {
	basePath string
}

// NewLocal creates a local mirror rooted at path, creating it if needed.
func NewLocal(path string) (*Local, error) {
	if path == "" {
		path = "mdconvert_mirror"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving mirror path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating mirror directory: %w", err)
	}
	return &Local{basePath: abs}, nil
}

// Save writes the content to basePath/name, creating parent directories as
// needed.
func (l *Local) Save(_ context.Context, name string, r io.Reader) (FileInfo, error) {
	dest := filepath.Join(l.basePath, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return FileInfo{}, fmt.Errorf("creating directory for %s: %w", name, err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return FileInfo{}, fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return FileInfo{}, fmt.Errorf("writing %s: %w", dest, err)
	}
	return FileInfo{Name: name, Size: size, Path: dest}, nil
}

// Get opens a stored object by name.
func (l *Local) Get(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.basePath, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("opening mirrored object %s: %w", name, err)
	}
	return f, nil
}

// List walks the mirror directory and returns every stored object.
func (l *Local) List(_ context.Context) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.WalkDir(l.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Name: filepath.ToSlash(rel), Size: info.Size(), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing mirror: %w", err)
	}
	return files, nil
}
