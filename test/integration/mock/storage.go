package mock

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/agency-ops/backend/internal/application/adapter"
)

// ObjectStorage is an in-memory adapter.ObjectStorage for tests.
type ObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewObjectStorage() *ObjectStorage {
	return &ObjectStorage{
		objects: make(map[string][]byte),
	}
}

func (s *ObjectStorage) Upload(ctx context.Context, path string, content io.Reader, size int64, contentType string) (*adapter.StoredObject, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.objects[path] = data
	s.mu.Unlock()

	return &adapter.StoredObject{
		Path: path,
		URL:  "http://storage.test/" + path,
	}, nil
}

func (s *ObjectStorage) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[path]; !ok {
		return fmt.Errorf("object %s not found", path)
	}
	delete(s.objects, path)
	return nil
}

// Count returns the number of stored objects.
func (s *ObjectStorage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Clear removes all stored objects.
func (s *ObjectStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string][]byte)
}
