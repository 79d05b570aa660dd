// service/services.go
package service

import (
	"database/sql"

	"github.com/dev-mohitbeniwal/blog-api/auth"
	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/dao"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type Services struct {
	Post     IPostService
	Category ICategoryService
	Author   IAuthorService
	Comment  ICommentService
	Media    IMediaService
	AI       IAIService
	Auth     IAuthService
}

func InitializeServices(
	db *sql.DB,
	blobs BlobStore,
	generator TextGenerator,
	issuer *auth.TokenIssuer,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	eventBus *util.EventBus,
	cfg *config.Configuration,
) (*Services, error) {
	postDAO := dao.NewPostDAO(db)
	categoryDAO := dao.NewCategoryDAO(db)
	authorDAO := dao.NewAuthorDAO(db)
	commentDAO := dao.NewCommentDAO(db)

	services := &Services{
		Post:     NewPostService(postDAO, validationUtil, cacheService, eventBus),
		Category: NewCategoryService(categoryDAO, validationUtil, cacheService, eventBus),
		Author:   NewAuthorService(authorDAO),
		Comment:  NewCommentService(commentDAO, postDAO, validationUtil, eventBus, cfg.Comments.SpamPatterns),
		Media:    NewMediaService(blobs, eventBus, cfg.Media),
		AI:       NewAIService(generator, validationUtil),
		Auth:     NewAuthService(authorDAO, issuer, cacheService, eventBus, cfg.Auth.DefaultRole),
	}

	return services, nil
}
