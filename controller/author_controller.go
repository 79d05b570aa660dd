// controller/author_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type AuthorController struct {
	authorService service.IAuthorService
	postService   service.IPostService
	cacheService  *util.CacheService
}

func NewAuthorController(authorService service.IAuthorService, postService service.IPostService, cacheService *util.CacheService) *AuthorController {
	return &AuthorController{
		authorService: authorService,
		postService:   postService,
		cacheService:  cacheService,
	}
}

func (ac *AuthorController) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	{
		authors.GET("", ac.ListAuthors)
		authors.GET("/:id", ac.GetAuthor)
		authors.GET("/:id/posts", ac.ListAuthorPosts)
	}
}

func (ac *AuthorController) ListAuthors(c *gin.Context) {
	key := ac.cacheService.Key(util.CacheAuthors)
	if serveFromCache(c, ac.cacheService, key) {
		return
	}

	authors, err := ac.authorService.ListAuthors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch authors")
		return
	}
	respondAndCache(c, ac.cacheService, key, util.CacheAuthors, model.Response{Success: true, Data: authors})
}

func (ac *AuthorController) GetAuthor(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	author, err := ac.authorService.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch author")
		return
	}
	util.RespondOK(c, http.StatusOK, author, "")
}

// ListAuthorPosts pages over one author's published posts.
func (ac *AuthorController) ListAuthorPosts(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	page, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		badRequest(c, err.Error(), blog_errors.ErrInvalidPagination)
		return
	}

	if _, err := ac.authorService.GetAuthor(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to fetch author")
		return
	}
	posts, pagination, err := ac.postService.ListPosts(c.Request.Context(), model.PostListParams{Page: page, Limit: limit, AuthorID: id})
	if err != nil {
		respondServiceError(c, err, "Failed to fetch posts")
		return
	}
	util.RespondPage(c, posts, pagination)
}
