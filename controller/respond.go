// controller/respond.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorTable maps service sentinels to responses. An empty message echoes the error.
var errorTable = []errorMapping{
	{blog_errors.ErrPostNotFound, http.StatusNotFound, "Post not found"},
	{blog_errors.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{blog_errors.ErrAuthorNotFound, http.StatusNotFound, "Author not found"},
	{blog_errors.ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
	{blog_errors.ErrMediaNotFound, http.StatusNotFound, "Media not found"},
	{blog_errors.ErrSlugConflict, http.StatusConflict, "Slug already in use"},
	{blog_errors.ErrEmailTaken, http.StatusConflict, "Email already registered"},
	{blog_errors.ErrConflict, http.StatusConflict, "Resource conflict"},
	{blog_errors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{blog_errors.ErrUnauthorized, http.StatusUnauthorized, "Authorization required"},
	{blog_errors.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{blog_errors.ErrForbidden, http.StatusForbidden, "Insufficient permissions"},
	{blog_errors.ErrFileTooLarge, http.StatusBadRequest, "File too large"},
	{blog_errors.ErrUnsupportedMediaType, http.StatusBadRequest, "Unsupported file type"},
	{blog_errors.ErrNoFile, http.StatusBadRequest, "No file uploaded"},
	{blog_errors.ErrInvalidPostData, http.StatusBadRequest, ""},
	{blog_errors.ErrInvalidCategory, http.StatusBadRequest, ""},
	{blog_errors.ErrInvalidComment, http.StatusBadRequest, ""},
	{blog_errors.ErrInvalidCommentStat, http.StatusBadRequest, ""},
	{blog_errors.ErrInvalidInput, http.StatusBadRequest, ""},
	{blog_errors.ErrInvalidPagination, http.StatusBadRequest, ""},
	{blog_errors.ErrInference, http.StatusBadGateway, "AI service unavailable"},
}

// respondServiceError writes the response for err. Unrecognised errors get a
// 500 with fallback and are logged, never echoed.
func respondServiceError(c *gin.Context, err error, fallback string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			message := m.message
			if message == "" {
				message = clientMessage(err)
			}
			util.RespondWithError(c, m.status, message, err)
			return
		}
	}
	util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
}

// clientMessage drops the "failed to ...:" wrapping added on the way up.
func clientMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, "failed to "); i >= 0 {
		if j := strings.Index(msg[i:], ": "); j >= 0 {
			msg = msg[i+j+2:]
		}
	}
	return msg
}

func badRequest(c *gin.Context, message string, err error) {
	util.RespondWithError(c, http.StatusBadRequest, message, err)
}

// respondAndCache writes resp and stores the exact bytes under key.
func respondAndCache(c *gin.Context, cache *util.CacheService, key, class string, resp model.Response) {
	body, err := util.MarshalAndRespond(c, resp)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}
	cache.Set(c.Request.Context(), key, body, cache.TTL(class))
}

// serveFromCache answers from cache when key is present.
func serveFromCache(c *gin.Context, cache *util.CacheService, key string) bool {
	body, ok := cache.Get(c.Request.Context(), key)
	if ok {
		util.RespondCached(c, body)
	}
	return ok
}

func principal(c *gin.Context) *model.Principal {
	p, _ := util.GetPrincipal(c)
	return p
}
