package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore is an in-memory ObjectStore for development and tests.
type MemoryStore struct {
	objects map[string]memoryObject
	mu      sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) Open(ctx context.Context, bucket, path string) (*Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key(bucket, path)]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", bucket, path, ErrObjectNotFound)
	}
	return &Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
	}, nil
}

func (s *MemoryStore) Put(ctx context.Context, bucket, path string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read object body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key(bucket, path)] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func key(bucket, path string) string {
	return bucket + "/" + path
}
