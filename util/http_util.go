// util/http_util.go
package util

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/model"
)

const principalKey = "principal"

// RespondWithError logs err and writes the failure envelope with message.
func RespondWithError(c *gin.Context, code int, message string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", code),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	}
	if code >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Debug(message, fields...)
	}
	c.AbortWithStatusJSON(code, model.Response{Success: false, Error: message})
}

// RespondOK writes a success envelope.
func RespondOK(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, model.Response{Success: true, Data: data, Message: message})
}

// RespondPage writes a success envelope with pagination.
func RespondPage(c *gin.Context, data interface{}, pagination *model.Pagination) {
	c.JSON(http.StatusOK, model.Response{Success: true, Data: data, Pagination: pagination})
}

// RespondCached writes an already-serialized envelope verbatim.
func RespondCached(c *gin.Context, body []byte) {
	c.Header("X-Cache", "HIT")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// MarshalAndRespond serializes resp, writes it, and returns the bytes written
// so the caller can cache them.
func MarshalAndRespond(c *gin.Context, resp model.Response) ([]byte, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	return body, nil
}

// SetPrincipal attaches the authenticated principal to the request.
func SetPrincipal(c *gin.Context, p *model.Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the principal set by the auth middleware, if any.
func GetPrincipal(c *gin.Context) (*model.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*model.Principal)
	return p, ok
}
