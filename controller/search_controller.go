// controller/search_controller.go
package controller

import (
	"strings"

	"github.com/gin-gonic/gin"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type SearchController struct {
	postService  service.IPostService
	cacheService *util.CacheService
}

func NewSearchController(postService service.IPostService, cacheService *util.CacheService) *SearchController {
	return &SearchController{postService: postService, cacheService: cacheService}
}

func (sc *SearchController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/search", sc.Search)
}

func (sc *SearchController) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 2 {
		badRequest(c, "Search query must be at least 2 characters", blog_errors.ErrInvalidInput)
		return
	}
	page, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		badRequest(c, err.Error(), blog_errors.ErrInvalidPagination)
		return
	}

	key := sc.cacheService.SearchKey(q, page, limit)
	if serveFromCache(c, sc.cacheService, key) {
		return
	}

	posts, pagination, err := sc.postService.Search(c.Request.Context(), q, page, limit)
	if err != nil {
		respondServiceError(c, err, "Search failed")
		return
	}
	respondAndCache(c, sc.cacheService, key, util.CacheSearch, model.Response{Success: true, Data: posts, Pagination: pagination})
}
