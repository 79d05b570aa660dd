// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/config"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
)

// ErrQueryUnsupported is returned by sinks that cannot be searched.
var ErrQueryUnsupported = errors.New("audit query not supported by this sink")

type Repository interface {
	Record(ctx context.Context, log AuditLog) error
	Query(ctx context.Context, q Query) ([]AuditLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a repository writing to cfg.Index at cfg.URL.
func NewElasticsearchRepository(cfg config.ElasticsearchConfiguration) (*ElasticsearchRepository, error) {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
	})
	if err != nil {
		return nil, err
	}
	index := cfg.Index
	if index == "" {
		index = "blog-audit-logs"
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

// Record indexes one audit entry.
func (r *ElasticsearchRepository) Record(ctx context.Context, log AuditLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: log.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source AuditLog `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildQuery(q Query) map[string]interface{} {
	rng := map[string]interface{}{}
	if !q.From.IsZero() {
		rng["gte"] = q.From.Format(time.RFC3339)
	}
	if !q.To.IsZero() {
		rng["lte"] = q.To.Format(time.RFC3339)
	}

	must := []interface{}{}
	if len(rng) > 0 {
		must = append(must, map[string]interface{}{"range": map[string]interface{}{"timestamp": rng}})
	}
	if q.Actor != "" {
		must = append(must, map[string]interface{}{"match": map[string]interface{}{"actor": q.Actor}})
	}
	if q.Resource != "" {
		must = append(must, map[string]interface{}{"match": map[string]interface{}{"resource": q.Resource}})
	}

	size := q.Size
	if size <= 0 {
		size = 100
	}
	return map[string]interface{}{
		"size": size,
		"sort": []interface{}{map[string]interface{}{"timestamp": "desc"}},
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
}

// Query searches the audit index, newest first.
func (r *ElasticsearchRepository) Query(ctx context.Context, q Query) ([]AuditLog, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildQuery(q)); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	logs := make([]AuditLog, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		logs = append(logs, hit.Source)
	}
	return logs, nil
}

// LogRepository writes audit entries to the structured log. Used when
// Elasticsearch is disabled.
type LogRepository struct{}

func NewLogRepository() *LogRepository {
	return &LogRepository{}
}

func (r *LogRepository) Record(ctx context.Context, log AuditLog) error {
	logger.Info("AUDIT",
		zap.String("actor", log.Actor),
		zap.String("action", log.Action),
		zap.String("resource", log.Resource),
		zap.String("resourceID", log.ResourceID),
		zap.Bool("success", log.Success),
		zap.Time("timestamp", log.Timestamp))
	return nil
}

func (r *LogRepository) Query(ctx context.Context, q Query) ([]AuditLog, error) {
	return nil, ErrQueryUnsupported
}
