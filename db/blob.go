// db/blob.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
)

// BlobStore keeps media objects as files with a JSON metadata sidecar.
type BlobStore struct {
	fs afero.Fs
}

// NewBlobStore roots a store at dir on the local filesystem.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return NewBlobStoreFs(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// NewBlobStoreFs wraps an arbitrary afero filesystem.
func NewBlobStoreFs(fs afero.Fs) *BlobStore {
	return &BlobStore{fs: fs}
}

func objectPath(key string) string {
	return "/" + key
}

func metaPath(key string) string {
	return "/" + key + ".meta.json"
}

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, `/\`) && key != "." && key != ".." &&
		!strings.HasSuffix(key, ".meta.json") && path.Clean(key) == key
}

// Put writes data and its metadata under obj.Key.
func (b *BlobStore) Put(ctx context.Context, obj model.MediaObject, data []byte) error {
	if !validKey(obj.Key) {
		return fmt.Errorf("invalid media key %q", obj.Key)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := afero.WriteFile(b.fs, objectPath(obj.Key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	meta, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal object metadata: %w", err)
	}
	if err := afero.WriteFile(b.fs, metaPath(obj.Key), meta, 0o644); err != nil {
		_ = b.fs.Remove(objectPath(obj.Key))
		return fmt.Errorf("failed to write object metadata: %w", err)
	}
	logger.Debug("Object stored", zap.String("key", obj.Key), zap.Int64("size", obj.Size))
	return nil
}

// Head returns the metadata of key without reading the object body.
func (b *BlobStore) Head(ctx context.Context, key string) (*model.MediaObject, error) {
	if !validKey(key) {
		return nil, blog_errors.ErrMediaNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := afero.ReadFile(b.fs, metaPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, blog_errors.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to read object metadata: %w", err)
	}
	var obj model.MediaObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal object metadata: %w", err)
	}
	return &obj, nil
}

// Get returns the object body and its metadata.
func (b *BlobStore) Get(ctx context.Context, key string) ([]byte, *model.MediaObject, error) {
	obj, err := b.Head(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	data, err := afero.ReadFile(b.fs, objectPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, blog_errors.ErrMediaNotFound
		}
		return nil, nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, obj, nil
}

// Delete removes key and its metadata.
func (b *BlobStore) Delete(ctx context.Context, key string) error {
	if _, err := b.Head(ctx, key); err != nil {
		return err
	}
	if err := b.fs.Remove(objectPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	if err := b.fs.Remove(metaPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object metadata: %w", err)
	}
	logger.Debug("Object deleted", zap.String("key", key))
	return nil
}

// Ping checks the store root is readable.
func (b *BlobStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.fs.Stat("/")
	return err
}
