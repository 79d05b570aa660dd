// service/category_service.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dev-mohitbeniwal/blog-api/dao"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type ICategoryService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, req model.CategoryRequest, actor *model.Principal) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest, actor *model.Principal) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64, actor *model.Principal) error
}

type CategoryService struct {
	categoryDAO    *dao.CategoryDAO
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	eventBus       *util.EventBus
	now            func() time.Time
}

var _ ICategoryService = &CategoryService{}

func NewCategoryService(categoryDAO *dao.CategoryDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, eventBus *util.EventBus) *CategoryService {
	return &CategoryService{
		categoryDAO:    categoryDAO,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		eventBus:       eventBus,
		now:            time.Now,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categoryDAO.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryDAO.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req model.CategoryRequest, actor *model.Principal) (*model.Category, error) {
	category := &model.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
	}
	if category.Name == "" {
		return nil, fmt.Errorf("%w: name is required", blog_errors.ErrInvalidCategory)
	}
	if category.Slug == "" {
		category.Slug = util.Slugify(category.Name)
	}
	if err := s.validationUtil.ValidateSlug(category.Slug); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrInvalidCategory, err)
	}

	now := s.now().UTC().Truncate(time.Second)
	category.CreatedAt = now
	category.UpdatedAt = now

	id, err := s.categoryDAO.CreateCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.ID = id

	s.cacheService.Invalidate(ctx, util.CacheCategories)
	s.eventBus.Publish(ctx, util.EventCategoryCreated, util.ChangePayload{
		Resource:   "category",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
		Details:    *category,
	})
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest, actor *model.Principal) (*model.Category, error) {
	if err := s.validationUtil.ValidateCategoryUpdate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", blog_errors.ErrInvalidCategory, err)
	}
	if err := s.categoryDAO.UpdateCategory(ctx, id, req, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	category, err := s.categoryDAO.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload category: %w", err)
	}

	// Post lists embed the category name.
	s.cacheService.Invalidate(ctx, util.CacheCategories)
	s.cacheService.Invalidate(ctx, util.CachePostsList)
	s.eventBus.Publish(ctx, util.EventCategoryUpdated, util.ChangePayload{
		Resource:   "category",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
		Details:    *category,
	})
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int64, actor *model.Principal) error {
	if err := s.categoryDAO.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.cacheService.Invalidate(ctx, util.CacheCategories)
	s.cacheService.Invalidate(ctx, util.CachePostsList)
	s.eventBus.Publish(ctx, util.EventCategoryDeleted, util.ChangePayload{
		Resource:   "category",
		ResourceID: strconv.FormatInt(id, 10),
		Actor:      actorName(actor),
	})
	return nil
}
