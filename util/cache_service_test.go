package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyDeterministic(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewCacheService(client, testCacheConfig())

	a := cache.PostListKey(1, 10, "go", "news", 3)
	assert.Equal(t, a, cache.PostListKey(1, 10, "go", "news", 3))
	assert.Equal(t, "cache:posts:list:page=1:limit=10:search="+HashedParam("search", "go").Value+":category=news:author=3", a)

	assert.NotEqual(t, a, cache.PostListKey(2, 10, "go", "news", 3))
	assert.NotEqual(t, a, cache.PostListKey(1, 10, "go", "news", 0))
	assert.Equal(t, "cache:posts:list:page=1:limit=10:search=:category=:author=", cache.PostListKey(1, 10, "", "", 0))
}

func TestCacheKeyKeepsQueryValuesExact(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewCacheService(client, testCacheConfig())

	// The store matches slugs exactly, so differently cased values are different queries.
	assert.NotEqual(t, cache.PostListKey(1, 10, "", "tech", 0), cache.PostListKey(1, 10, "", "TECH", 0))
	assert.NotEqual(t, cache.PostListKey(1, 10, "go", "", 0), cache.PostListKey(1, 10, " go ", "", 0))
	assert.NotEqual(t, cache.PostDetailKey("in-tech"), cache.PostDetailKey("IN-TECH"))
	assert.NotEqual(t, cache.SearchKey("Go", 1, 10), cache.SearchKey("go", 1, 10))
}

func TestParamEncodesZeroLiterally(t *testing.T) {
	assert.Equal(t, "0", Param("n", 0).Value)
	assert.Equal(t, "0", Param("n", int64(0)).Value)
	assert.Equal(t, "", Param("s", "").Value)
}

func TestHashedParam(t *testing.T) {
	assert.Equal(t, HashedParam("q", "hello world"), HashedParam("q", "hello world"))
	assert.NotEqual(t, HashedParam("q", "hello"), HashedParam("q", "world"))
	assert.NotEqual(t, HashedParam("q", "Hello"), HashedParam("q", "hello"))
}

func TestCacheReadWithinTTLIsByteIdentical(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewCacheService(client, testCacheConfig())
	ctx := context.Background()

	body := []byte(`{"success":true,"data":[{"id":1}],"pagination":{"page":1,"limit":10,"total":1,"totalPages":1}}`)
	key := cache.PostListKey(1, 10, "", "", 0)
	cache.Set(ctx, key, body, 5*time.Minute)

	mr.FastForward(4*time.Minute + 59*time.Second)
	got, ok := cache.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, body, got)

	mr.FastForward(2 * time.Second)
	_, ok = cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestCacheStoreDownIsMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewCacheService(client, testCacheConfig())
	mr.Close()

	_, ok := cache.Get(context.Background(), "cache:anything")
	assert.False(t, ok)
	// must not panic or surface the error
	cache.Set(context.Background(), "cache:anything", []byte("x"), time.Minute)
}

func TestInvalidatePostLists(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewCacheService(client, testCacheConfig())
	ctx := context.Background()

	common := cache.PostListKey(2, 20, "", "", 0)
	filtered := cache.PostListKey(1, 10, "go", "", 0)
	cache.Set(ctx, common, []byte("a"), time.Minute)
	cache.Set(ctx, filtered, []byte("b"), time.Minute)

	assert.Len(t, cache.InvalidationKeys(CachePostsList), 4)
	cache.Invalidate(ctx, CachePostsList)

	_, ok := cache.Get(ctx, common)
	assert.False(t, ok)
	// uncommon shapes are left to expire
	_, ok = cache.Get(ctx, filtered)
	assert.True(t, ok)
}

func TestInvalidateCategories(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewCacheService(client, testCacheConfig())
	ctx := context.Background()

	key := cache.Key(CacheCategories)
	cache.Set(ctx, key, []byte("cats"), cache.TTL(CacheCategories))
	cache.Invalidate(ctx, CacheCategories)

	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)
}

func TestCacheTTLByClass(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewCacheService(client, testCacheConfig())

	assert.Equal(t, 5*time.Minute, cache.TTL(CachePostsList))
	assert.Equal(t, 10*time.Minute, cache.TTL(CachePostDetail))
	assert.Equal(t, 30*time.Minute, cache.TTL(CacheCategories))
	assert.Equal(t, 30*time.Minute, cache.TTL(CacheAuthors))
	assert.Equal(t, 5*time.Minute, cache.TTL(CacheSearch))
}
