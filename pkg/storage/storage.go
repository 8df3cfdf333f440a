// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storage mirrors converted Markdown to a storage backend: a local
// directory or a MinIO bucket. The mirror is a convenience copy; conversion
// results never depend on it.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// FileInfo describes one stored object.
type FileInfo struct {
	Name string // object name, possibly with a run prefix
	Size int64
	Path string // backend-specific location
}

// Storage is the mirror backend contract.
type Storage interface {
	// Save stores the content under name, overwriting any previous object.
	Save(ctx context.Context, name string, r io.Reader) (FileInfo, error)

	// Get retrieves a stored object by name.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns every stored object.
	List(ctx context.Context) ([]FileInfo, error)
}

// New creates the storage backend selected by cfg. Backend "none" (or empty)
// returns nil with no error; callers treat a nil Storage as mirroring off.
func New(cfg types.MirrorConfig) (Storage, error) {
	switch cfg.Backend {
	case types.MirrorNone, "":
		return nil, nil
	case types.MirrorLocal:
		return NewLocal(cfg.Path)
	case types.MirrorMinio:
		return NewMinio(cfg)
	default:
		return nil, fmt.Errorf("unknown mirror backend %q: use none, local, or minio", cfg.Backend)
	}
}
