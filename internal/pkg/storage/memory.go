package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"maps"
	"sync"
	"time"
)

// Memory keeps objects in process. It backs local runs and tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data []byte
	info ObjectInfo
}

func NewMemory() *Memory {
	return &Memory{objects: map[string]memoryObject{}}
}

func (m *Memory) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	if bucket == "" {
		return ObjectInfo{}, ErrBucketRequired
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return ObjectInfo{}, err
	}

	sum := md5.Sum(data)
	info := ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        int64(len(data)),
		ETag:        hex.EncodeToString(sum[:]),
		ContentType: opts.ContentType,
		Metadata:    maps.Clone(opts.Metadata),
		UpdatedAt:   time.Now().UTC(),
	}

	m.mu.Lock()
	m.objects[bucket+"/"+key] = memoryObject{data: data, info: info}
	m.mu.Unlock()

	return info, nil
}

func (m *Memory) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ObjectInfo{}, err
	}

	m.mu.RLock()
	obj, ok := m.objects[bucket+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (m *Memory) DeleteObject(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.objects, bucket+"/"+key)
	m.mu.Unlock()
	return nil
}

// Keys lists stored object keys of bucket.
func (m *Memory) Keys(bucket string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for _, obj := range m.objects {
		if obj.info.Bucket == bucket {
			keys = append(keys, obj.info.Key)
		}
	}
	return keys
}

func (m *Memory) Close() error { return nil }
