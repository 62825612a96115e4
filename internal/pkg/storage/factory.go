package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverMemory = "memory"
	DriverS3     = "s3"
	DriverGCS    = "gcs"
	DriverMinIO  = "minio"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

type FactoryOptions struct {
	S3    S3Options
	GCS   GCSOptions
	MinIO MinIOOptions
}

func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverGCS:
		return NewGCS(ctx, opts.GCS)
	case DriverMinIO:
		return NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
