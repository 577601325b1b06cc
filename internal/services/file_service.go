package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
	"vendorhub/pkg/storage"
)

const defaultContentType = "application/octet-stream"

var labelFileExtensions = map[string]bool{".pdf": true, ".png": true, ".jpg": true, ".jpeg": true}

// ContentTypeFor maps a file name's extension to the content type served for it.
func ContentTypeFor(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return defaultContentType
	}
}

type FileOptions struct {
	Buckets        []string
	LabelsBucket   string
	MaxUploadBytes int64
}

// FileDownload is an object ready to be streamed to the client. Body must be closed.
type FileDownload struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	Filename    string
}

type UploadedFile struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

// FileService relays stored label files and accepts label uploads.
type FileService struct {
	store          storage.ObjectStore
	labels         repositories.LabelRequestRepository
	buckets        map[string]bool
	labelsBucket   string
	maxUploadBytes int64
}

func NewFileService(store storage.ObjectStore, labels repositories.LabelRequestRepository, opts FileOptions) *FileService {
	buckets := make(map[string]bool, len(opts.Buckets)+1)
	for _, b := range opts.Buckets {
		buckets[b] = true
	}
	if opts.LabelsBucket != "" {
		buckets[opts.LabelsBucket] = true
	}
	return &FileService{
		store:          store,
		labels:         labels,
		buckets:        buckets,
		labelsBucket:   opts.LabelsBucket,
		maxUploadBytes: opts.MaxUploadBytes,
	}
}

// OpenFile opens bucket/objectPath for an authenticated actor. Unknown buckets and objects are NotFound.
func (s *FileService) OpenFile(ctx context.Context, actor *models.Profile, bucket, objectPath string) (*FileDownload, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("not authenticated")
	}
	if !access.IsAuthorized(actor, access.ReadFiles) {
		return nil, apperr.Forbidden("not allowed to read files")
	}
	objectPath = strings.TrimPrefix(objectPath, "/")
	if !s.buckets[bucket] || !validObjectPath(objectPath) {
		return nil, apperr.NotFound("file not found")
	}

	obj, err := s.store.Open(ctx, bucket, objectPath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, apperr.NotFound("file not found")
		}
		return nil, apperr.Internal("failed to open file", err)
	}
	return &FileDownload{
		Body:        obj.Body,
		Size:        obj.Size,
		ContentType: ContentTypeFor(objectPath),
		Filename:    path.Base(objectPath),
	}, nil
}

// UploadLabelFile stores a label file under labels/<labelRequestID>/ in the labels bucket and
// returns the relay URL to attach to the request.
func (s *FileService) UploadLabelFile(ctx context.Context, actor *models.Profile, labelRequestID, filename string, size int64, body io.Reader) (*UploadedFile, error) {
	if !access.IsAuthorized(actor, access.UploadLabels) {
		return nil, apperr.Forbidden("only admins can upload labels")
	}
	if _, err := s.labels.GetByID(ctx, labelRequestID); err != nil {
		return nil, mapRepoError(err, "label request not found", "failed to load label request")
	}
	if s.maxUploadBytes > 0 && size > s.maxUploadBytes {
		return nil, apperr.InvalidInput(fmt.Sprintf("file exceeds the %d byte limit", s.maxUploadBytes), map[string]string{"file": "too large"})
	}
	name := sanitizeFilename(filename)
	if !labelFileExtensions[strings.ToLower(path.Ext(name))] {
		return nil, apperr.InvalidInput("label files must be pdf, png, jpg or jpeg", map[string]string{"file": "unsupported type"})
	}

	objectPath := path.Join("labels", labelRequestID, name)
	if err := s.store.Put(ctx, s.labelsBucket, objectPath, body, ContentTypeFor(name)); err != nil {
		return nil, apperr.Internal("failed to store label file", err)
	}
	return &UploadedFile{
		Bucket: s.labelsBucket,
		Path:   objectPath,
		URL:    "/api/files/" + s.labelsBucket + "/" + objectPath,
	}, nil
}

func validObjectPath(p string) bool {
	if p == "" || strings.HasSuffix(p, "/") {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
