// audit/service.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type Service interface {
	Record(ctx context.Context, log AuditLog) error
	Query(ctx context.Context, q Query) ([]AuditLog, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Record stamps log with an id and time when missing and stores it.
func (s *service) Record(ctx context.Context, log AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = s.now().UTC()
	}
	return s.repo.Record(ctx, log)
}

func (s *service) Query(ctx context.Context, q Query) ([]AuditLog, error) {
	return s.repo.Query(ctx, q)
}

// auditedEvents are the events written to the audit trail.
var auditedEvents = []string{
	util.EventPostCreated, util.EventPostUpdated, util.EventPostDeleted,
	util.EventCategoryCreated, util.EventCategoryUpdated, util.EventCategoryDeleted,
	util.EventCommentModerated, util.EventCommentDeleted,
	util.EventMediaUploaded, util.EventMediaDeleted,
	util.EventAuthLogin, util.EventAuthLoginFailed, util.EventAuthorRegistered,
}

// Recorder turns bus events into audit entries.
type Recorder struct {
	svc Service
}

func NewRecorder(svc Service) *Recorder {
	return &Recorder{svc: svc}
}

// Register subscribes the recorder to every audited event.
func (r *Recorder) Register(bus *util.EventBus) {
	bus.SubscribeAll(r.handle, auditedEvents...)
}

func (r *Recorder) handle(ctx context.Context, event util.Event) error {
	change, ok := event.Payload.(util.ChangePayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}

	entry := AuditLog{
		Actor:      change.Actor,
		Action:     event.Type,
		Resource:   change.Resource,
		ResourceID: change.ResourceID,
		Success:    event.Type != util.EventAuthLoginFailed,
	}
	if change.Details != nil {
		details, err := json.Marshal(change.Details)
		if err != nil {
			logger.Warn("Failed to marshal audit details", zap.Error(err), zap.String("action", event.Type))
		} else {
			entry.Details = details
		}
	}

	if err := r.svc.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
