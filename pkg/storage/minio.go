// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// Minio mirrors objects into a MinIO (or S3-compatible) bucket.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio creates the bucket-backed mirror, creating the bucket when it
// does not exist yet.
func NewMinio(cfg types.MirrorConfig) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating MinIO client: %w", err)
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "mdconvert"
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", bucket, err)
		}
	}

	return &Minio{client: client, bucket: bucket}, nil
}

// Save uploads the content under name. Size is unknown up front, so the
// upload streams with chunked transfer.
func (m *Minio) Save(ctx context.Context, name string, r io.Reader) (FileInfo, error) {
	info, err := m.client.PutObject(ctx, m.bucket, name, r, -1,
		minio.PutObjectOptions{ContentType: "text/markdown"})
	if err != nil {
		return FileInfo{}, fmt.Errorf("uploading %s: %w", name, err)
	}
	return FileInfo{Name: name, Size: info.Size, Path: m.bucket + "/" + name}, nil
}

// Get retrieves a stored object by name.
func (m *Minio) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	return obj, nil
}

// List returns every object in the bucket.
func (m *Minio) List(ctx context.Context) ([]FileInfo, error) {
	var files []FileInfo
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("listing bucket %s: %w", m.bucket, object.Err)
		}
		files = append(files, FileInfo{Name: object.Key, Size: object.Size, Path: m.bucket + "/" + object.Key})
	}
	return files, nil
}
