// controller/category_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type CategoryController struct {
	categoryService service.ICategoryService
	cacheService    *util.CacheService
}

func NewCategoryController(categoryService service.ICategoryService, cacheService *util.CacheService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		cacheService:    cacheService,
	}
}

func (cc *CategoryController) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	categories := r.Group("/categories")
	{
		categories.GET("", cc.ListCategories)
		categories.GET("/:slug", cc.GetCategory)
		categories.POST("", admin, cc.CreateCategory)
		categories.PUT("/:id", admin, cc.UpdateCategory)
		categories.DELETE("/:id", admin, cc.DeleteCategory)
	}
}

func (cc *CategoryController) ListCategories(c *gin.Context) {
	key := cc.cacheService.Key(util.CacheCategories)
	if serveFromCache(c, cc.cacheService, key) {
		return
	}

	categories, err := cc.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch categories")
		return
	}
	respondAndCache(c, cc.cacheService, key, util.CacheCategories, model.Response{Success: true, Data: categories})
}

func (cc *CategoryController) GetCategory(c *gin.Context) {
	category, err := cc.categoryService.GetCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch category")
		return
	}
	util.RespondOK(c, http.StatusOK, category, "")
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name is required", err)
		return
	}
	category, err := cc.categoryService.CreateCategory(c.Request.Context(), req, principal(c))
	if err != nil {
		respondServiceError(c, err, "Failed to create category")
		return
	}
	util.RespondOK(c, http.StatusCreated, category, "Category created successfully")
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid category data", err)
		return
	}
	category, err := cc.categoryService.UpdateCategory(c.Request.Context(), id, req, principal(c))
	if err != nil {
		respondServiceError(c, err, "Failed to update category")
		return
	}
	util.RespondOK(c, http.StatusOK, category, "Category updated successfully")
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	if err := cc.categoryService.DeleteCategory(c.Request.Context(), id, principal(c)); err != nil {
		respondServiceError(c, err, "Failed to delete category")
		return
	}
	util.RespondOK(c, http.StatusOK, nil, "Category deleted successfully")
}
