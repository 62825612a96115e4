// Package storage writes and reads opaque objects on S3, MinIO, Google Cloud
// Storage or process memory behind one interface.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketRequired = errors.New("storage: bucket is required")
)

type Storage interface {
	io.Closer

	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error
}

type PutOptions struct {
	// Size is required by S3 and MinIO; -1 lets MinIO stream with multipart.
	Size        int64
	ContentType string
	Metadata    map[string]string
}

type ObjectInfo struct {
	Bucket      string
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
	UpdatedAt   time.Time
}
