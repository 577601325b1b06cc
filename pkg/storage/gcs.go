package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore is an ObjectStore backed by Google Cloud Storage.
type GCSStore struct {
	client *gcs.Client
}

// NewGCSStore creates a storage client, using credentialsFile when set and application
// default credentials otherwise.
func NewGCSStore(ctx context.Context, credentialsFile string) (*GCSStore, error) {
	opts := []option.ClientOption{option.WithScopes(gcs.ScopeReadWrite)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client}, nil
}

func (s *GCSStore) Open(ctx context.Context, bucket, path string) (*Object, error) {
	r, err := s.client.Bucket(bucket).Object(path).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) || errors.Is(err, gcs.ErrBucketNotExist) {
			return nil, fmt.Errorf("%s/%s: %w", bucket, path, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to open GCS reader for %s/%s: %w", bucket, path, err)
	}
	return &Object{Body: r, Size: r.Attrs.Size, ContentType: r.Attrs.ContentType}, nil
}

func (s *GCSStore) Put(ctx context.Context, bucket, path string, body io.Reader, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
