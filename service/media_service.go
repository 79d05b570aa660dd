// service/media_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/config"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

// BlobStore is the object storage the media service writes to.
type BlobStore interface {
	Put(ctx context.Context, obj model.MediaObject, data []byte) error
	Get(ctx context.Context, key string) ([]byte, *model.MediaObject, error)
	Delete(ctx context.Context, key string) error
}

// Upload is one file received from a client.
type Upload struct {
	Filename     string
	DeclaredType string
	Size         int64
	Body         io.Reader
}

type IMediaService interface {
	Upload(ctx context.Context, upload Upload, actor *model.Principal) (*model.MediaObject, error)
	Get(ctx context.Context, key string) ([]byte, *model.MediaObject, error)
	Delete(ctx context.Context, key string, actor *model.Principal) error
}

type MediaService struct {
	blobs        BlobStore
	eventBus     *util.EventBus
	maxSize      int64
	allowedTypes []string
	now          func() time.Time
}

var _ IMediaService = &MediaService{}

func NewMediaService(blobs BlobStore, eventBus *util.EventBus, cfg config.MediaConfiguration) *MediaService {
	return &MediaService{
		blobs:        blobs,
		eventBus:     eventBus,
		maxSize:      cfg.MaxSize,
		allowedTypes: cfg.AllowedTypes,
		now:          time.Now,
	}
}

func (s *MediaService) allowed(contentType string) bool {
	for _, t := range s.allowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// Upload validates size and type, then stores the file under a fresh key.
// Size is checked before anything touches the blob store.
func (s *MediaService) Upload(ctx context.Context, upload Upload, actor *model.Principal) (*model.MediaObject, error) {
	if upload.Body == nil {
		return nil, blog_errors.ErrNoFile
	}
	if upload.Size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", blog_errors.ErrFileTooLarge, upload.Size, s.maxSize)
	}

	declared, _, err := mime.ParseMediaType(upload.DeclaredType)
	if err != nil || !s.allowed(declared) {
		return nil, fmt.Errorf("%w: %q", blog_errors.ErrUnsupportedMediaType, upload.DeclaredType)
	}

	data, err := io.ReadAll(io.LimitReader(upload.Body, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: exceeds the %d byte limit", blog_errors.ErrFileTooLarge, s.maxSize)
	}
	if len(data) == 0 {
		return nil, blog_errors.ErrNoFile
	}

	sniffed := mimetype.Detect(data)
	if !s.allowed(sniffed.String()) {
		return nil, fmt.Errorf("%w: content is %s", blog_errors.ErrUnsupportedMediaType, sniffed.String())
	}

	key := uuid.NewString() + sniffed.Extension()
	obj := model.MediaObject{
		Key:          key,
		URL:          "/api/media/" + key,
		ContentType:  sniffed.String(),
		Size:         int64(len(data)),
		OriginalName: upload.Filename,
		ETag:         fmt.Sprintf("\"%016x\"", xxhash.Sum64(data)),
		UploadedAt:   s.now().UTC(),
	}
	if err := s.blobs.Put(ctx, obj, data); err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	logger.Info("Media uploaded", zap.String("key", key), zap.Int64("size", obj.Size), zap.String("contentType", obj.ContentType))
	s.eventBus.Publish(ctx, util.EventMediaUploaded, util.ChangePayload{
		Resource:   "media",
		ResourceID: key,
		Actor:      actorName(actor),
		Details:    obj,
	})
	return &obj, nil
}

func (s *MediaService) Get(ctx context.Context, key string) ([]byte, *model.MediaObject, error) {
	data, obj, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get media: %w", err)
	}
	return data, obj, nil
}

func (s *MediaService) Delete(ctx context.Context, key string, actor *model.Principal) error {
	if err := s.blobs.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	s.eventBus.Publish(ctx, util.EventMediaDeleted, util.ChangePayload{
		Resource:   "media",
		ResourceID: key,
		Actor:      actorName(actor),
	})
	return nil
}
