package service

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/db"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

// countingBlobs counts every call that reaches the store.
type countingBlobs struct {
	*db.BlobStore
	calls atomic.Int64
}

func (c *countingBlobs) Put(ctx context.Context, obj model.MediaObject, data []byte) error {
	c.calls.Add(1)
	return c.BlobStore.Put(ctx, obj, data)
}

func (c *countingBlobs) Get(ctx context.Context, key string) ([]byte, *model.MediaObject, error) {
	c.calls.Add(1)
	return c.BlobStore.Get(ctx, key)
}

func (c *countingBlobs) Delete(ctx context.Context, key string) error {
	c.calls.Add(1)
	return c.BlobStore.Delete(ctx, key)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func newMediaService() (*MediaService, *countingBlobs) {
	blobs := &countingBlobs{BlobStore: db.NewBlobStoreFs(afero.NewMemMapFs())}
	svc := NewMediaService(blobs, util.NewEventBus(), config.MediaConfiguration{
		MaxSize:      5 * 1024 * 1024,
		AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	})
	return svc, blobs
}

func TestUploadRejectsOversizeBeforeStore(t *testing.T) {
	svc, blobs := newMediaService()
	big := bytes.NewReader(make([]byte, 6*1024*1024))

	_, err := svc.Upload(context.Background(), Upload{
		Filename: "big.png", DeclaredType: "image/png", Size: 6 * 1024 * 1024, Body: big,
	}, nil)
	assert.ErrorIs(t, err, blog_errors.ErrFileTooLarge)
	assert.Zero(t, blobs.calls.Load())

	// A lying size header is caught while reading.
	_, err = svc.Upload(context.Background(), Upload{
		Filename: "big.png", DeclaredType: "image/png", Size: 10, Body: bytes.NewReader(make([]byte, 6*1024*1024)),
	}, nil)
	assert.ErrorIs(t, err, blog_errors.ErrFileTooLarge)
	assert.Zero(t, blobs.calls.Load())
}

func TestUploadChecksDeclaredAndSniffedType(t *testing.T) {
	svc, blobs := newMediaService()

	_, err := svc.Upload(context.Background(), Upload{
		Filename: "a.txt", DeclaredType: "text/plain", Size: 5, Body: strings.NewReader("hello"),
	}, nil)
	assert.ErrorIs(t, err, blog_errors.ErrUnsupportedMediaType)

	_, err = svc.Upload(context.Background(), Upload{
		Filename: "fake.png", DeclaredType: "image/png", Size: 5, Body: strings.NewReader("hello"),
	}, nil)
	assert.ErrorIs(t, err, blog_errors.ErrUnsupportedMediaType)

	assert.Zero(t, blobs.calls.Load())
}

func TestUploadGetDelete(t *testing.T) {
	svc, _ := newMediaService()
	ctx := context.Background()

	obj, err := svc.Upload(ctx, Upload{
		Filename: "pixel.png", DeclaredType: "image/png", Size: int64(len(pngBytes)), Body: bytes.NewReader(pngBytes),
	}, &model.Principal{MasterKey: true})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, "/api/media/"+obj.Key, obj.URL)
	assert.NotEmpty(t, obj.ETag)

	data, meta, err := svc.Get(ctx, obj.Key)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, obj.ETag, meta.ETag)

	require.NoError(t, svc.Delete(ctx, obj.Key, nil))
	_, _, err = svc.Get(ctx, obj.Key)
	assert.ErrorIs(t, err, blog_errors.ErrMediaNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, obj.Key, nil), blog_errors.ErrMediaNotFound)
}

func TestUploadWithoutBody(t *testing.T) {
	svc, _ := newMediaService()
	_, err := svc.Upload(context.Background(), Upload{DeclaredType: "image/png"}, nil)
	assert.ErrorIs(t, err, blog_errors.ErrNoFile)
}
