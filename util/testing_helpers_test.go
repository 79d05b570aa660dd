package util

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dev-mohitbeniwal/blog-api/config"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testCacheConfig() config.CacheConfiguration {
	return config.CacheConfiguration{
		TTL: config.CacheTTLConfiguration{
			PostsList:  5 * time.Minute,
			PostDetail: 10 * time.Minute,
			Categories: 30 * time.Minute,
			Authors:    30 * time.Minute,
			Search:     5 * time.Minute,
		},
		Invalidation: config.InvalidationConfiguration{
			Pages:  []int{1, 2},
			Limits: []int{10, 20},
		},
	}
}
