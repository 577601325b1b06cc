// Package storage abstracts the object store holding label files.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when a bucket or object does not exist.
var ErrObjectNotFound = errors.New("storage: object not found")

// Object is an open stored object. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// ObjectStore reads and writes objects addressed by bucket and path.
type ObjectStore interface {
	Open(ctx context.Context, bucket, path string) (*Object, error)
	Put(ctx context.Context, bucket, path string, body io.Reader, contentType string) error
	Close() error
}
