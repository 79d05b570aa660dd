// util/cache_service.go

package util

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/config"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
)

// Resource classes cached by the API.
const (
	CachePostsList  = "posts:list"
	CachePostDetail = "posts:slug"
	CacheCategories = "categories:list"
	CacheAuthors    = "authors:list"
	CacheSearch     = "search"
)

// CacheParam is one name=value component of a cache key.
type CacheParam struct {
	Name  string
	Value string
}

// Param encodes value verbatim. Keys must be built from exactly what the
// query behind them uses, so no case folding or trimming happens here.
func Param(name string, value interface{}) CacheParam {
	switch v := value.(type) {
	case string:
		return CacheParam{Name: name, Value: v}
	case int:
		return CacheParam{Name: name, Value: strconv.Itoa(v)}
	case int64:
		return CacheParam{Name: name, Value: strconv.FormatInt(v, 10)}
	default:
		return CacheParam{Name: name, Value: fmt.Sprint(v)}
	}
}

// HashedParam keeps unbounded user text out of the key. The hash is over the
// exact value.
func HashedParam(name, value string) CacheParam {
	return CacheParam{Name: name, Value: strconv.FormatUint(xxhash.Sum64String(value), 16)}
}

// CacheService stores serialized response envelopes in Redis.
type CacheService struct {
	client *redis.Client
	ttl    config.CacheTTLConfiguration
	shapes config.InvalidationConfiguration
}

func NewCacheService(client *redis.Client, cfg config.CacheConfiguration) *CacheService {
	return &CacheService{client: client, ttl: cfg.TTL, shapes: cfg.Invalidation}
}

// Key joins class and params in the order given. Identical queries map to identical keys.
func (c *CacheService) Key(class string, params ...CacheParam) string {
	var b strings.Builder
	b.WriteString("cache:")
	b.WriteString(class)
	for _, p := range params {
		b.WriteByte(':')
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// PostListKey is the key of one post list query. Absent filters encode as
// empty values.
func (c *CacheService) PostListKey(page, limit int, search, category string, authorID int64) string {
	searchParam := Param("search", "")
	if search != "" {
		searchParam = HashedParam("search", search)
	}
	authorParam := Param("author", "")
	if authorID > 0 {
		authorParam = Param("author", authorID)
	}
	return c.Key(CachePostsList,
		Param("page", page),
		Param("limit", limit),
		searchParam,
		Param("category", category),
		authorParam,
	)
}

// PostDetailKey is the key of one post by slug.
func (c *CacheService) PostDetailKey(slug string) string {
	return c.Key(CachePostDetail, Param("slug", slug))
}

// SearchKey is the key of one search page.
func (c *CacheService) SearchKey(q string, page, limit int) string {
	return c.Key(CacheSearch, HashedParam("q", q), Param("page", page), Param("limit", limit))
}

// TTL returns the lifetime of a resource class.
func (c *CacheService) TTL(class string) time.Duration {
	switch class {
	case CachePostsList:
		return c.ttl.PostsList
	case CachePostDetail:
		return c.ttl.PostDetail
	case CacheCategories:
		return c.ttl.Categories
	case CacheAuthors:
		return c.ttl.Authors
	case CacheSearch:
		return c.ttl.Search
	}
	return 5 * time.Minute
}

// Get returns the cached bytes under key. Store errors count as a miss.
func (c *CacheService) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		logger.Debug("Cache miss", zap.String("key", key))
		return nil, false
	} else if err != nil {
		logger.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	logger.Debug("Cache hit", zap.String("key", key))
	return value, true
}

// Set overwrites key. Failures are logged and otherwise ignored.
func (c *CacheService) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}

// Delete removes keys, best effort.
func (c *CacheService) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("Cache delete failed", zap.Error(err), zap.Strings("keys", keys))
	}
}

// InvalidationKeys lists the anticipated keys of class purged on writes.
// Filtered or uncommon shapes are not listed and age out on their TTL.
func (c *CacheService) InvalidationKeys(class string) []string {
	switch class {
	case CachePostsList:
		keys := make([]string, 0, len(c.shapes.Pages)*len(c.shapes.Limits))
		for _, page := range c.shapes.Pages {
			for _, limit := range c.shapes.Limits {
				keys = append(keys, c.PostListKey(page, limit, "", "", 0))
			}
		}
		return keys
	case CacheCategories, CacheAuthors:
		return []string{c.Key(class)}
	}
	return nil
}

// Invalidate purges the anticipated keys of class.
func (c *CacheService) Invalidate(ctx context.Context, class string) {
	keys := c.InvalidationKeys(class)
	c.Delete(ctx, keys...)
	logger.Debug("Cache invalidated", zap.String("class", class), zap.Int("keys", len(keys)))
}
