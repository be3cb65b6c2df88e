// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"io"
)

// StoredObject describes a binary stored in the object store.
type StoredObject struct {
	// Path is the object key within the bucket.
	Path string
	// URL is the public retrieval URL for the object.
	URL string
}

// ObjectStorage defines the interface for storing document binaries.
type ObjectStorage interface {
	// Upload stores the content under the given path and returns the
	// storage reference.
	Upload(ctx context.Context, path string, content io.Reader, size int64, contentType string) (*StoredObject, error)

	// Remove deletes the object at the given path.
	Remove(ctx context.Context, path string) error
}
