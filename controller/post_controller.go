// controller/post_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type PostController struct {
	postService  service.IPostService
	cacheService *util.CacheService
}

func NewPostController(postService service.IPostService, cacheService *util.CacheService) *PostController {
	return &PostController{
		postService:  postService,
		cacheService: cacheService,
	}
}

// RegisterRoutes registers the post routes. The GET tree shares the :id
// wildcard with /posts/:id/comments, so GetPost reads its slug from :id.
func (pc *PostController) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	posts := r.Group("/posts")
	{
		posts.GET("", pc.ListPosts)
		posts.GET("/:id", pc.GetPost)
		posts.POST("", admin, pc.CreatePost)
		posts.PUT("/:id", admin, pc.UpdatePost)
		posts.DELETE("/:id", admin, pc.DeletePost)
		posts.POST("/:id/views", pc.RecordView)
	}
}

// ListPosts endpoint
func (pc *PostController) ListPosts(c *gin.Context) {
	page, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		badRequest(c, err.Error(), blog_errors.ErrInvalidPagination)
		return
	}
	params := model.PostListParams{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if author := c.Query("author"); author != "" {
		params.AuthorID, err = strconv.ParseInt(author, 10, 64)
		if err != nil || params.AuthorID < 1 {
			badRequest(c, "author must be a positive integer", blog_errors.ErrInvalidInput)
			return
		}
	}

	key := pc.cacheService.PostListKey(params.Page, params.Limit, params.Search, params.Category, params.AuthorID)
	if serveFromCache(c, pc.cacheService, key) {
		return
	}

	posts, pagination, err := pc.postService.ListPosts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch posts")
		return
	}
	respondAndCache(c, pc.cacheService, key, util.CachePostsList, model.Response{Success: true, Data: posts, Pagination: pagination})
}

// GetPost endpoint
func (pc *PostController) GetPost(c *gin.Context) {
	slug := c.Param("id")
	key := pc.cacheService.PostDetailKey(slug)
	if serveFromCache(c, pc.cacheService, key) {
		return
	}

	post, err := pc.postService.GetPost(c.Request.Context(), slug)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch post")
		return
	}
	respondAndCache(c, pc.cacheService, key, util.CachePostDetail, model.Response{Success: true, Data: post})
}

// CreatePost endpoint
func (pc *PostController) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title and content are required", err)
		return
	}

	post, err := pc.postService.CreatePost(c.Request.Context(), req, principal(c))
	if err != nil {
		respondServiceError(c, err, "Failed to create post")
		return
	}
	util.RespondOK(c, http.StatusCreated, post, "Post created successfully")
}

// UpdatePost endpoint
func (pc *PostController) UpdatePost(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid post data", err)
		return
	}

	post, err := pc.postService.UpdatePost(c.Request.Context(), id, req, principal(c))
	if err != nil {
		respondServiceError(c, err, "Failed to update post")
		return
	}
	util.RespondOK(c, http.StatusOK, post, "Post updated successfully")
}

// DeletePost endpoint
func (pc *PostController) DeletePost(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), id, principal(c)); err != nil {
		respondServiceError(c, err, "Failed to delete post")
		return
	}
	util.RespondOK(c, http.StatusOK, nil, "Post deleted successfully")
}

// RecordView always answers 200; counting is best effort.
func (pc *PostController) RecordView(c *gin.Context) {
	if id, err := helper_util.GetIDParam(c, "id"); err == nil {
		if err := pc.postService.RecordView(c.Request.Context(), id); err != nil {
			logger.Warn("Failed to record view", zap.Error(err), zap.Int64("postID", id))
		}
	}
	util.RespondOK(c, http.StatusOK, nil, "View recorded")
}
