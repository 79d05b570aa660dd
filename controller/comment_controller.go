// controller/comment_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
	helper_util "github.com/dev-mohitbeniwal/blog-api/util/helper"
)

type CommentController struct {
	commentService service.ICommentService
}

func NewCommentController(commentService service.ICommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

func (cc *CommentController) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	r.GET("/posts/:id/comments", cc.ListComments)
	r.POST("/posts/:id/comments", cc.CreateComment)

	comments := r.Group("/comments", admin)
	{
		comments.PUT("/:id/status", cc.UpdateStatus)
		comments.DELETE("/:id", cc.DeleteComment)
	}
}

func (cc *CommentController) ListComments(c *gin.Context) {
	postID, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	comments, err := cc.commentService.ListApproved(c.Request.Context(), postID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch comments")
		return
	}
	util.RespondOK(c, http.StatusOK, comments, "")
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	postID, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	var req model.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Author name, valid email and content are required", err)
		return
	}

	comment, err := cc.commentService.CreateComment(c.Request.Context(), postID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create comment")
		return
	}
	comment.AuthorEmail = ""
	util.RespondOK(c, http.StatusCreated, comment, "Comment submitted for moderation")
}

func (cc *CommentController) UpdateStatus(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	var req model.CommentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Status must be one of pending, approved, spam", err)
		return
	}

	comment, err := cc.commentService.UpdateStatus(c.Request.Context(), id, req.Status, principal(c))
	if err != nil {
		respondServiceError(c, err, "Failed to update comment")
		return
	}
	util.RespondOK(c, http.StatusOK, comment, "Comment status updated")
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	id, err := helper_util.GetIDParam(c, "id")
	if err != nil {
		badRequest(c, err.Error(), err)
		return
	}
	if err := cc.commentService.DeleteComment(c.Request.Context(), id, principal(c)); err != nil {
		respondServiceError(c, err, "Failed to delete comment")
		return
	}
	util.RespondOK(c, http.StatusOK, nil, "Comment deleted successfully")
}
