// controller/media_controller.go
package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

const mediaCacheControl = "public, max-age=31536000, immutable"

type MediaController struct {
	mediaService service.IMediaService
	maxSize      int64
}

func NewMediaController(mediaService service.IMediaService, maxSize int64) *MediaController {
	return &MediaController{mediaService: mediaService, maxSize: maxSize}
}

func (mc *MediaController) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	media := r.Group("/media")
	{
		media.POST("/upload", admin, mc.Upload)
		media.GET("/:key", mc.GetMedia)
		media.DELETE("/:key", admin, mc.DeleteMedia)
	}
}

// Upload takes a multipart "file" field.
func (mc *MediaController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondServiceError(c, blog_errors.ErrNoFile, "Failed to upload file")
		return
	}
	if header.Size > mc.maxSize {
		respondServiceError(c, blog_errors.ErrFileTooLarge, "Failed to upload file")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}
	defer file.Close()

	obj, err := mc.mediaService.Upload(c.Request.Context(), service.Upload{
		Filename:     header.Filename,
		DeclaredType: header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
	}, principal(c))
	if err != nil {
		respondServiceError(c, err, "Failed to upload file")
		return
	}
	util.RespondOK(c, http.StatusCreated, obj, "File uploaded successfully")
}

func etagMatches(ifNoneMatch, etag string) bool {
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// GetMedia serves the stored bytes with long-lived cache headers.
func (mc *MediaController) GetMedia(c *gin.Context) {
	data, obj, err := mc.mediaService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch media")
		return
	}

	c.Header("Cache-Control", mediaCacheControl)
	c.Header("ETag", obj.ETag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && etagMatches(inm, obj.ETag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, obj.ContentType, data)
}

func (mc *MediaController) DeleteMedia(c *gin.Context) {
	if err := mc.mediaService.Delete(c.Request.Context(), c.Param("key"), principal(c)); err != nil {
		respondServiceError(c, err, "Failed to delete media")
		return
	}
	util.RespondOK(c, http.StatusOK, nil, "Media deleted successfully")
}
