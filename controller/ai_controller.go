// controller/ai_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type AIController struct {
	aiService service.IAIService
}

func NewAIController(aiService service.IAIService) *AIController {
	return &AIController{aiService: aiService}
}

func (ac *AIController) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	ai := r.Group("/ai", admin)
	{
		ai.POST("/generate-excerpt", ac.GenerateExcerpt)
		ai.POST("/generate-tags", ac.GenerateTags)
		ai.POST("/content-analysis", ac.AnalyzeContent)
	}
}

func (ac *AIController) GenerateExcerpt(c *gin.Context) {
	var req model.ExcerptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Content is required", err)
		return
	}
	res, err := ac.aiService.GenerateExcerpt(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to generate excerpt")
		return
	}
	util.RespondOK(c, http.StatusOK, res, "")
}

func (ac *AIController) GenerateTags(c *gin.Context) {
	var req model.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Title and content are required", err)
		return
	}
	res, err := ac.aiService.GenerateTags(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to generate tags")
		return
	}
	util.RespondOK(c, http.StatusOK, res, "")
}

func (ac *AIController) AnalyzeContent(c *gin.Context) {
	var req model.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Content is required", err)
		return
	}
	res, err := ac.aiService.AnalyzeContent(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to analyze content")
		return
	}
	util.RespondOK(c, http.StatusOK, res, "")
}
