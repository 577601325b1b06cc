package services_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
	"vendorhub/internal/services"
	"vendorhub/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileService(t *testing.T) (*services.FileService, *storage.MemoryStore, *MockLabelRequestRepository) {
	t.Helper()
	store := storage.NewMemoryStore()
	labels := new(MockLabelRequestRepository)
	svc := services.NewFileService(store, labels, services.FileOptions{
		Buckets:        []string{"labels", "public"},
		LabelsBucket:   "labels",
		MaxUploadBytes: 1024,
	})
	return svc, store, labels
}

func TestContentTypeFor(t *testing.T) {
	tests := map[string]string{
		"label.pdf":        "application/pdf",
		"LABEL.PDF":        "application/pdf",
		"scan.png":         "image/png",
		"photo.jpg":        "image/jpeg",
		"photo.jpeg":       "image/jpeg",
		"notes.txt":        "application/octet-stream",
		"no-extension":     "application/octet-stream",
		"dir/archive.tar.": "application/octet-stream",
	}
	for name, want := range tests {
		assert.Equal(t, want, services.ContentTypeFor(name), name)
	}
}

func TestFileService_OpenFile(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newFileService(t)
	require.NoError(t, store.Put(ctx, "labels", "labels/l-1/label.pdf", strings.NewReader("%PDF-1.4"), "text/plain"))

	file, err := svc.OpenFile(ctx, sellerProfile(), "labels", "/labels/l-1/label.pdf")
	require.NoError(t, err)
	defer file.Body.Close()
	body, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "label.pdf", file.Filename)
	assert.Equal(t, int64(8), file.Size)

	tests := []struct {
		name   string
		actor  *models.Profile
		bucket string
		path   string
		kind   apperr.Kind
	}{
		{"anonymous", nil, "labels", "labels/l-1/label.pdf", apperr.KindUnauthenticated},
		{"unknown bucket", sellerProfile(), "secrets", "labels/l-1/label.pdf", apperr.KindNotFound},
		{"missing object", sellerProfile(), "labels", "labels/l-1/other.pdf", apperr.KindNotFound},
		{"empty path", sellerProfile(), "labels", "", apperr.KindNotFound},
		{"traversal", adminProfile(), "labels", "labels/../labels/l-1/label.pdf", apperr.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.OpenFile(ctx, tt.actor, tt.bucket, tt.path)
			assert.True(t, apperr.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestFileService_UploadLabelFile(t *testing.T) {
	ctx := context.Background()
	svc, store, labels := newFileService(t)
	labels.On("GetByID", ctx, "l-1").Return(&models.LabelRequest{ID: "l-1"}, nil)
	labels.On("GetByID", ctx, "missing").Return(nil, fmt.Errorf("label request with ID missing: %w", repositories.ErrNotFound))

	uploaded, err := svc.UploadLabelFile(ctx, adminProfile(), "l-1", "my label.pdf", 8, strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "labels/l-1/my_label.pdf", uploaded.Path)
	assert.Equal(t, "/api/files/labels/labels/l-1/my_label.pdf", uploaded.URL)

	obj, err := store.Open(ctx, "labels", "labels/l-1/my_label.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", obj.ContentType)

	_, err = svc.UploadLabelFile(ctx, sellerProfile(), "l-1", "label.pdf", 8, strings.NewReader("x"))
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = svc.UploadLabelFile(ctx, adminProfile(), "missing", "label.pdf", 8, strings.NewReader("x"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.UploadLabelFile(ctx, adminProfile(), "l-1", "label.pdf", 4096, strings.NewReader("x"))
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))

	_, err = svc.UploadLabelFile(ctx, adminProfile(), "l-1", "label.exe", 8, strings.NewReader("x"))
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}
