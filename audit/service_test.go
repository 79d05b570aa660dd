package audit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type memoryRepository struct {
	mu   sync.Mutex
	logs []AuditLog
}

func (m *memoryRepository) Record(ctx context.Context, log AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *memoryRepository) Query(ctx context.Context, q Query) ([]AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AuditLog(nil), m.logs...), nil
}

func TestServiceStampsEntries(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewService(repo)

	require.NoError(t, svc.Record(context.Background(), AuditLog{Action: "post.created"}))
	logs, err := svc.Query(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.NotEmpty(t, logs[0].ID)
	assert.False(t, logs[0].Timestamp.IsZero())
}

func TestRecorderTranslatesEvents(t *testing.T) {
	repo := &memoryRepository{}
	bus := util.NewEventBus()
	NewRecorder(NewService(repo)).Register(bus)

	bus.Publish(context.Background(), util.EventPostDeleted, util.ChangePayload{
		Resource: "post", ResourceID: "7", Actor: "ada@example.com",
		Details: map[string]string{"slug": "hello"},
	})
	bus.Publish(context.Background(), util.EventAuthLoginFailed, util.ChangePayload{
		Resource: "author", Actor: "eve@example.com",
	})
	bus.Publish(context.Background(), util.EventCommentCreated, util.ChangePayload{Resource: "comment"})
	bus.Wait()

	logs, _ := repo.Query(context.Background(), Query{})
	require.Len(t, logs, 2)

	byAction := map[string]AuditLog{}
	for _, l := range logs {
		byAction[l.Action] = l
	}
	deleted := byAction[util.EventPostDeleted]
	assert.True(t, deleted.Success)
	assert.Equal(t, "7", deleted.ResourceID)
	assert.JSONEq(t, `{"slug":"hello"}`, string(deleted.Details))

	failed := byAction[util.EventAuthLoginFailed]
	assert.False(t, failed.Success)
	assert.Equal(t, "eve@example.com", failed.Actor)
}

func TestRecorderRejectsUnknownPayload(t *testing.T) {
	r := NewRecorder(NewService(&memoryRepository{}))
	err := r.handle(context.Background(), util.Event{Type: util.EventPostCreated, Payload: 42})
	assert.Error(t, err)
}

func fakeElasticsearch(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			_, _ = io.WriteString(w, `{"version":{"number":"8.5.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestElasticsearchRepositoryRecord(t *testing.T) {
	var gotPath string
	var gotBody AuditLog
	srv := fakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	repo, err := NewElasticsearchRepository(config.ElasticsearchConfiguration{URL: srv.URL, Index: "audit-test"})
	require.NoError(t, err)

	entry := AuditLog{ID: "abc", Action: util.EventPostCreated, Actor: "ada", Timestamp: time.Unix(1700000000, 0).UTC()}
	require.NoError(t, repo.Record(context.Background(), entry))
	assert.Equal(t, "/audit-test/_doc/abc", gotPath)
	assert.Equal(t, "ada", gotBody.Actor)
}

func TestElasticsearchRepositoryRecordError(t *testing.T) {
	srv := fakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"mapper_parsing_exception"}`)
	})
	repo, err := NewElasticsearchRepository(config.ElasticsearchConfiguration{URL: srv.URL})
	require.NoError(t, err)
	assert.Error(t, repo.Record(context.Background(), AuditLog{ID: "x"}))
}

func TestElasticsearchRepositoryQuery(t *testing.T) {
	var gotQuery map[string]interface{}
	srv := fakeElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/_search"))
		_ = json.NewDecoder(r.Body).Decode(&gotQuery)
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_source":{"id":"1","actor":"ada","action":"post.created","success":true}}]}}`)
	})
	repo, err := NewElasticsearchRepository(config.ElasticsearchConfiguration{URL: srv.URL})
	require.NoError(t, err)

	logs, err := repo.Query(context.Background(), Query{Actor: "ada", Size: 5})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "post.created", logs[0].Action)
	assert.EqualValues(t, 5, gotQuery["size"])
}

func TestLogRepository(t *testing.T) {
	repo := NewLogRepository()
	assert.NoError(t, repo.Record(context.Background(), AuditLog{Action: "auth.login"}))
	_, err := repo.Query(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrQueryUnsupported)
}
