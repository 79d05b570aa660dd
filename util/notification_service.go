// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
)

// NotificationService tells editors about content that needs attention.
// Delivery is the structured log; a mail or chat sink would hang off here.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Register subscribes the service to the events it reacts to.
func (n *NotificationService) Register(bus *EventBus) {
	bus.Subscribe(EventCommentCreated, n.handleCommentCreated)
	bus.Subscribe(EventPostCreated, n.handlePostChange)
	bus.Subscribe(EventPostUpdated, n.handlePostChange)
}

func (n *NotificationService) handleCommentCreated(ctx context.Context, event Event) error {
	change, ok := event.Payload.(ChangePayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	comment, ok := change.Details.(model.Comment)
	if !ok {
		return fmt.Errorf("unexpected comment details %T", change.Details)
	}
	return n.NotifyCommentPending(ctx, comment)
}

func (n *NotificationService) handlePostChange(ctx context.Context, event Event) error {
	change, ok := event.Payload.(ChangePayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	post, ok := change.Details.(model.Post)
	if !ok {
		return fmt.Errorf("unexpected post details %T", change.Details)
	}
	if post.Status != model.PostStatusPublished {
		return nil
	}
	return n.NotifyPostPublished(ctx, post)
}

// NotifyCommentPending alerts moderators to a comment awaiting review. Spam is not announced.
func (n *NotificationService) NotifyCommentPending(ctx context.Context, comment model.Comment) error {
	switch comment.Status {
	case model.CommentStatusPending:
		logger.Info("NOTIFICATION: Comment awaiting moderation",
			zap.Int64("commentID", comment.ID),
			zap.Int64("postID", comment.PostID),
			zap.String("authorName", comment.AuthorName))
	case model.CommentStatusSpam:
		logger.Debug("Comment flagged as spam", zap.Int64("commentID", comment.ID))
	default:
		return fmt.Errorf("unknown comment status: %s", comment.Status)
	}
	return nil
}

func (n *NotificationService) NotifyPostPublished(ctx context.Context, post model.Post) error {
	logger.Info("NOTIFICATION: Post published",
		zap.Int64("postID", post.ID),
		zap.String("slug", post.Slug),
		zap.String("title", post.Title))
	return nil
}
