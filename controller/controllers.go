// controller/controllers.go
package controller

import (
	"github.com/dev-mohitbeniwal/blog-api/audit"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type Controllers struct {
	Post     *PostController
	Category *CategoryController
	Author   *AuthorController
	Comment  *CommentController
	Media    *MediaController
	Search   *SearchController
	AI       *AIController
	Auth     *AuthController
	Audit    *AuditController
	System   *SystemController
}

func InitializeControllers(services *service.Services, auditService audit.Service, cacheService *util.CacheService, maxUpload int64, version string, checks ...HealthCheck) *Controllers {
	return &Controllers{
		Post:     NewPostController(services.Post, cacheService),
		Category: NewCategoryController(services.Category, cacheService),
		Author:   NewAuthorController(services.Author, services.Post, cacheService),
		Comment:  NewCommentController(services.Comment),
		Media:    NewMediaController(services.Media, maxUpload),
		Search:   NewSearchController(services.Post, cacheService),
		AI:       NewAIController(services.AI),
		Auth:     NewAuthController(services.Auth),
		Audit:    NewAuditController(auditService),
		System:   NewSystemController(version, checks...),
	}
}
