// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
)

// MockPostService is a mock implementation of service.IPostService
type MockPostService struct {
	mock.Mock
}

var _ service.IPostService = &MockPostService{}

func (m *MockPostService) ListPosts(ctx context.Context, params model.PostListParams) ([]*model.Post, *model.Pagination, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Get(1).(*model.Pagination), args.Error(2)
}

func (m *MockPostService) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, req model.CreatePostRequest, actor *model.Principal) (*model.Post, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, id int64, req model.UpdatePostRequest, actor *model.Principal) (*model.Post, error) {
	args := m.Called(ctx, id, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, id int64, actor *model.Principal) error {
	return m.Called(ctx, id, actor).Error(0)
}

func (m *MockPostService) RecordView(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostService) Search(ctx context.Context, q string, page, limit int) ([]*model.Post, *model.Pagination, error) {
	args := m.Called(ctx, q, page, limit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Get(1).(*model.Pagination), args.Error(2)
}

// MockCategoryService is a mock implementation of service.ICategoryService
type MockCategoryService struct {
	mock.Mock
}

var _ service.ICategoryService = &MockCategoryService{}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, req model.CategoryRequest, actor *model.Principal) (*model.Category, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest, actor *model.Principal) (*model.Category, error) {
	args := m.Called(ctx, id, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id int64, actor *model.Principal) error {
	return m.Called(ctx, id, actor).Error(0)
}

// MockAuthorService is a mock implementation of service.IAuthorService
type MockAuthorService struct {
	mock.Mock
}

var _ service.IAuthorService = &MockAuthorService{}

func (m *MockAuthorService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Author), args.Error(1)
}

func (m *MockAuthorService) GetAuthor(ctx context.Context, id int64) (*model.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}

// MockCommentService is a mock implementation of service.ICommentService
type MockCommentService struct {
	mock.Mock
}

var _ service.ICommentService = &MockCommentService{}

func (m *MockCommentService) ListApproved(ctx context.Context, postID int64) ([]*model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockCommentService) CreateComment(ctx context.Context, postID int64, req model.CommentRequest) (*model.Comment, error) {
	args := m.Called(ctx, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) UpdateStatus(ctx context.Context, id int64, status string, actor *model.Principal) (*model.Comment, error) {
	args := m.Called(ctx, id, status, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id int64, actor *model.Principal) error {
	return m.Called(ctx, id, actor).Error(0)
}

// MockMediaService is a mock implementation of service.IMediaService
type MockMediaService struct {
	mock.Mock
}

var _ service.IMediaService = &MockMediaService{}

func (m *MockMediaService) Upload(ctx context.Context, upload service.Upload, actor *model.Principal) (*model.MediaObject, error) {
	args := m.Called(ctx, upload, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaObject), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, key string) ([]byte, *model.MediaObject, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*model.MediaObject), args.Error(2)
}

func (m *MockMediaService) Delete(ctx context.Context, key string, actor *model.Principal) error {
	return m.Called(ctx, key, actor).Error(0)
}

// MockAIService is a mock implementation of service.IAIService
type MockAIService struct {
	mock.Mock
}

var _ service.IAIService = &MockAIService{}

func (m *MockAIService) GenerateExcerpt(ctx context.Context, req model.ExcerptRequest) (*model.ExcerptResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExcerptResult), args.Error(1)
}

func (m *MockAIService) GenerateTags(ctx context.Context, req model.TagsRequest) (*model.TagsResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TagsResult), args.Error(1)
}

func (m *MockAIService) AnalyzeContent(ctx context.Context, req model.AnalysisRequest) (*model.ContentAnalysis, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentAnalysis), args.Error(1)
}

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

var _ service.IAuthService = &MockAuthService{}

func (m *MockAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, principal *model.Principal) (*model.Author, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Author), args.Error(1)
}
