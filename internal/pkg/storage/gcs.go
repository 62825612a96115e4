package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

type GCSOptions struct {
	// CredentialsJSON is a service account key. Empty uses Application
	// Default Credentials.
	CredentialsJSON []byte
	Endpoint        string
}

type GCS struct {
	client *gcs.Client
}

func NewGCS(ctx context.Context, opts GCSOptions) (*GCS, error) {
	var clientOpts []option.ClientOption
	if len(opts.CredentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, opts.CredentialsJSON, gcs.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("storage: gcs credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: gcs client: %w", err)
	}
	return &GCS{client: client}, nil
}

func (g *GCS) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if bucket == "" {
		return ObjectInfo{}, ErrBucketRequired
	}

	w := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = opts.ContentType
	w.Metadata = opts.Metadata

	if _, err := io.Copy(w, r); err != nil {
		return ObjectInfo{}, errors.Join(fmt.Errorf("storage: gcs write: %w", err), w.Close())
	}
	if err := w.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("storage: gcs close: %w", err)
	}

	return gcsInfo(w.Attrs()), nil
}

func (g *GCS) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	obj := g.client.Bucket(bucket).Object(key)

	attrs, err := obj.Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("storage: gcs attrs: %w", err)
	}

	r, err := obj.NewReader(ctx)
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("storage: gcs read: %w", err)
	}
	return r, gcsInfo(attrs), nil
}

func (g *GCS) DeleteObject(ctx context.Context, bucket, key string) error {
	err := g.client.Bucket(bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("storage: gcs delete: %w", err)
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

func gcsInfo(attrs *gcs.ObjectAttrs) ObjectInfo {
	if attrs == nil {
		return ObjectInfo{}
	}
	return ObjectInfo{
		Bucket:      attrs.Bucket,
		Key:         attrs.Name,
		Size:        attrs.Size,
		ETag:        attrs.Etag,
		ContentType: attrs.ContentType,
		Metadata:    attrs.Metadata,
		UpdatedAt:   attrs.Updated,
	}
}
