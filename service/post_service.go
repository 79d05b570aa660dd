// service/post_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/dao"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

// IPostService defines the interface for post operations
type IPostService interface {
	ListPosts(ctx context.Context, params model.PostListParams) ([]*model.Post, *model.Pagination, error)
	GetPost(ctx context.Context, slug string) (*model.Post, error)
	CreatePost(ctx context.Context, req model.CreatePostRequest, actor *model.Principal) (*model.Post, error)
	UpdatePost(ctx context.Context, id int64, req model.UpdatePostRequest, actor *model.Principal) (*model.Post, error)
	DeletePost(ctx context.Context, id int64, actor *model.Principal) error
	RecordView(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, page, limit int) ([]*model.Post, *model.Pagination, error)
}

// PostService handles business logic for post operations
type PostService struct {
	postDAO        *dao.PostDAO
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	eventBus       *util.EventBus
	now            func() time.Time
}

var _ IPostService = &PostService{}

func NewPostService(postDAO *dao.PostDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, eventBus *util.EventBus) *PostService {
	return &PostService{
		postDAO:        postDAO,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		eventBus:       eventBus,
		now:            time.Now,
	}
}

// ListPosts pages over published posts. The page and the total are fetched concurrently.
func (s *PostService) ListPosts(ctx context.Context, params model.PostListParams) ([]*model.Post, *model.Pagination, error) {
	var posts []*model.Post
	var total int64

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		posts, err = s.postDAO.ListPosts(ctx, params, true)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		total, err = s.postDAO.CountPosts(ctx, params, true)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, model.NewPagination(params.Page, params.Limit, total), nil
}

func (s *PostService) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.postDAO.GetPostBySlug(ctx, slug, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// CreatePost stores a new post. The author is the caller; master-key callers name one in the body.
func (s *PostService) CreatePost(ctx context.Context, req model.CreatePostRequest, actor *model.Principal) (*model.Post, error) {
	post := &model.Post{
		Title:         strings.TrimSpace(req.Title),
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Status:        req.Status,
		CategoryID:    req.CategoryID,
	}
	if post.Title == "" || strings.TrimSpace(post.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", blog_errors.ErrInvalidPostData)
	}
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}

	post.AuthorID = req.AuthorID
	if actor != nil && actor.UserID > 0 {
		post.AuthorID = actor.UserID
	}
	if post.AuthorID <= 0 {
		return nil, fmt.Errorf("%w: authorId is required", blog_errors.ErrInvalidPostData)
	}

	post.Slug = req.Slug
	if post.Slug == "" {
		post.Slug = util.Slugify(post.Title)
	}
	if err := s.validationUtil.ValidateSlug(post.Slug); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrInvalidPostData, err)
	}

	tags, err := s.validationUtil.NormalizeTags(req.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrInvalidPostData, err)
	}
	post.Tags = tags

	now := s.now().UTC().Truncate(time.Second)
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Status == model.PostStatusPublished {
		post.PublishedAt = &now
	}

	id, err := s.postDAO.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	post.ID = id

	s.invalidate(ctx)
	s.eventBus.Publish(ctx, util.EventPostCreated, util.ChangePayload{
		Resource:   "post",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
		Details:    *post,
	})

	logger.Info("Post created successfully", zap.Int64("postID", id), zap.String("slug", post.Slug))
	return post, nil
}

// UpdatePost applies a partial update. Publishing a post for the first time stamps published_at.
func (s *PostService) UpdatePost(ctx context.Context, id int64, req model.UpdatePostRequest, actor *model.Principal) (*model.Post, error) {
	if err := s.validationUtil.ValidatePostUpdate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrInvalidPostData, err)
	}
	if req.Tags != nil {
		tags, err := s.validationUtil.NormalizeTags(*req.Tags)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", blog_errors.ErrInvalidPostData, err)
		}
		req.Tags = &tags
	}

	existing, err := s.postDAO.GetPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	now := s.now().UTC().Truncate(time.Second)
	var publishedAt *time.Time
	if req.Status != nil && *req.Status == model.PostStatusPublished && existing.PublishedAt == nil {
		publishedAt = &now
	}

	if err := s.postDAO.UpdatePost(ctx, id, req, publishedAt, now); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	updated, err := s.postDAO.GetPostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload post: %w", err)
	}

	s.invalidate(ctx, existing.Slug, updated.Slug)
	s.eventBus.Publish(ctx, util.EventPostUpdated, util.ChangePayload{
		Resource:   "post",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
		Details:    *updated,
	})
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64, actor *model.Principal) error {
	existing, err := s.postDAO.GetPostByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if err := s.postDAO.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.invalidate(ctx, existing.Slug)
	s.eventBus.Publish(ctx, util.EventPostDeleted, util.ChangePayload{
		Resource:   "post",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
		Details:    map[string]string{"slug": existing.Slug, "title": existing.Title},
	})
	return nil
}

// RecordView bumps the view counter. Unknown posts are ignored.
func (s *PostService) RecordView(ctx context.Context, id int64) error {
	err := s.postDAO.IncrementViews(ctx, id)
	if errors.Is(err, blog_errors.ErrPostNotFound) {
		logger.Debug("View recorded for unknown post", zap.Int64("postID", id))
		return nil
	}
	return err
}

// Search pages over published posts matching q, ranked by where q matches.
func (s *PostService) Search(ctx context.Context, q string, page, limit int) ([]*model.Post, *model.Pagination, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < 2 {
		return nil, nil, fmt.Errorf("%w: search query must be at least 2 characters", blog_errors.ErrInvalidInput)
	}
	posts, total, err := s.postDAO.SearchPosts(ctx, q, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return posts, model.NewPagination(page, limit, total), nil
}

// invalidate purges the list caches a post write can change plus the detail keys of slugs.
func (s *PostService) invalidate(ctx context.Context, slugs ...string) {
	s.cacheService.Invalidate(ctx, util.CachePostsList)
	s.cacheService.Invalidate(ctx, util.CacheCategories)
	s.cacheService.Invalidate(ctx, util.CacheAuthors)

	keys := make([]string, 0, len(slugs))
	seen := map[string]bool{}
	for _, slug := range slugs {
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		keys = append(keys, s.cacheService.PostDetailKey(slug))
	}
	s.cacheService.Delete(ctx, keys...)
}
