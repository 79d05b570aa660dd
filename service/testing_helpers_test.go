package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/dao"
	"github.com/dev-mohitbeniwal/blog-api/db"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	db    *sql.DB
	mr    *miniredis.Miniredis
	cache *util.CacheService
	bus   *util.EventBus
	valid *util.ValidationUtil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn, err := db.OpenSQLite(config.DatabaseConfiguration{Path: filepath.Join(t.TempDir(), "blog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseSQLite(conn) })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := util.NewCacheService(client, config.CacheConfiguration{
		TTL: config.CacheTTLConfiguration{
			PostsList:  5 * time.Minute,
			PostDetail: 10 * time.Minute,
			Categories: 30 * time.Minute,
			Authors:    30 * time.Minute,
			Search:     5 * time.Minute,
		},
		Invalidation: config.InvalidationConfiguration{Pages: []int{1, 2}, Limits: []int{10, 20}},
	})

	return &testEnv{db: conn, mr: mr, cache: cache, bus: util.NewEventBus(), valid: util.NewValidationUtil()}
}

func (e *testEnv) postService() *PostService {
	s := NewPostService(dao.NewPostDAO(e.db), e.valid, e.cache, e.bus)
	s.now = func() time.Time { return fixedNow }
	return s
}

func (e *testEnv) seedAuthor(t *testing.T, email string) int64 {
	t.Helper()
	id, err := dao.NewAuthorDAO(e.db).CreateAuthor(context.Background(), &model.Author{
		Name: "Ada", Email: email, PasswordHash: "x", Role: model.RoleAuthor,
		CreatedAt: fixedNow, UpdatedAt: fixedNow,
	})
	require.NoError(t, err)
	return id
}

// recordingBus captures events published on bus.
type recordingBus struct {
	mu     sync.Mutex
	events []util.Event
}

func record(bus *util.EventBus, types ...string) *recordingBus {
	r := &recordingBus{}
	bus.SubscribeAll(func(ctx context.Context, e util.Event) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
		return nil
	}, types...)
	return r
}

func (r *recordingBus) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
