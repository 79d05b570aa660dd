// service/comment_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/dao"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type ICommentService interface {
	ListApproved(ctx context.Context, postID int64) ([]*model.Comment, error)
	CreateComment(ctx context.Context, postID int64, req model.CommentRequest) (*model.Comment, error)
	UpdateStatus(ctx context.Context, id int64, status string, actor *model.Principal) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64, actor *model.Principal) error
}

type CommentService struct {
	commentDAO     *dao.CommentDAO
	postDAO        *dao.PostDAO
	validationUtil *util.ValidationUtil
	eventBus       *util.EventBus
	spamPatterns   []string
	now            func() time.Time
}

var _ ICommentService = &CommentService{}

func NewCommentService(commentDAO *dao.CommentDAO, postDAO *dao.PostDAO, validationUtil *util.ValidationUtil, eventBus *util.EventBus, spamPatterns []string) *CommentService {
	patterns := make([]string, 0, len(spamPatterns))
	for _, p := range spamPatterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			patterns = append(patterns, p)
		}
	}
	return &CommentService{
		commentDAO:     commentDAO,
		postDAO:        postDAO,
		validationUtil: validationUtil,
		eventBus:       eventBus,
		spamPatterns:   patterns,
		now:            time.Now,
	}
}

// ListApproved returns the approved comments of a published post, oldest first.
func (s *CommentService) ListApproved(ctx context.Context, postID int64) ([]*model.Comment, error) {
	comments, err := s.commentDAO.ListComments(ctx, postID, model.CommentStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	for _, c := range comments {
		c.AuthorEmail = ""
	}
	return comments, nil
}

// IsSpam reports whether content matches any configured pattern, case-insensitively.
func (s *CommentService) IsSpam(content string) bool {
	lower := strings.ToLower(content)
	for _, p := range s.spamPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// CreateComment stores a comment for moderation. Comments matching a spam
// pattern are stored as spam instead of pending.
func (s *CommentService) CreateComment(ctx context.Context, postID int64, req model.CommentRequest) (*model.Comment, error) {
	comment := &model.Comment{
		PostID:      postID,
		AuthorName:  strings.TrimSpace(req.AuthorName),
		AuthorEmail: strings.TrimSpace(req.AuthorEmail),
		Content:     strings.TrimSpace(req.Content),
		Status:      model.CommentStatusPending,
		CreatedAt:   s.now().UTC().Truncate(time.Second),
	}
	if comment.AuthorName == "" || comment.AuthorEmail == "" || comment.Content == "" {
		return nil, fmt.Errorf("%w: authorName, authorEmail and content are required", blog_errors.ErrInvalidComment)
	}

	post, err := s.postDAO.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post.Status != model.PostStatusPublished {
		return nil, blog_errors.ErrPostNotFound
	}

	if s.IsSpam(comment.Content) {
		comment.Status = model.CommentStatusSpam
		logger.Info("Comment flagged as spam", zap.Int64("postID", postID))
	}

	id, err := s.commentDAO.CreateComment(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.ID = id

	s.eventBus.Publish(ctx, util.EventCommentCreated, util.ChangePayload{
		Resource:   "comment",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      comment.AuthorEmail,
		Details:    *comment,
	})
	return comment, nil
}

func (s *CommentService) UpdateStatus(ctx context.Context, id int64, status string, actor *model.Principal) (*model.Comment, error) {
	if err := s.validationUtil.ValidateCommentStatus(status); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrInvalidCommentStat, err)
	}
	if err := s.commentDAO.UpdateCommentStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment, err := s.commentDAO.GetComment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload comment: %w", err)
	}

	s.eventBus.Publish(ctx, util.EventCommentModerated, util.ChangePayload{
		Resource:   "comment",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
		Details:    map[string]string{"status": status},
	})
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id int64, actor *model.Principal) error {
	if err := s.commentDAO.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	s.eventBus.Publish(ctx, util.EventCommentDeleted, util.ChangePayload{
		Resource:   "comment",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
	})
	return nil
}
