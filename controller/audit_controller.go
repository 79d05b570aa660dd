// controller/audit_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/blog-api/audit"
	blog_errors "github.com/dev-mohitbeniwal/blog-api/errors"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup, admin gin.HandlerFunc) {
	r.GET("/audit", admin, ac.QueryLogs)
}

func parseTimeParam(c *gin.Context, name string) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}

// QueryLogs lists audit entries filtered by actor, resource and an RFC 3339 time range.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	from, err := parseTimeParam(c, "from")
	if err != nil {
		badRequest(c, "from must be an RFC 3339 timestamp", blog_errors.ErrInvalidInput)
		return
	}
	to, err := parseTimeParam(c, "to")
	if err != nil {
		badRequest(c, "to must be an RFC 3339 timestamp", blog_errors.ErrInvalidInput)
		return
	}
	size := 100
	if v := c.Query("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil || size < 1 || size > 1000 {
			badRequest(c, "size must be between 1 and 1000", blog_errors.ErrInvalidInput)
			return
		}
	}

	logs, err := ac.auditService.Query(c.Request.Context(), audit.Query{
		From:     from,
		To:       to,
		Actor:    c.Query("actor"),
		Resource: c.Query("resource"),
		Size:     size,
	})
	if err != nil {
		if errors.Is(err, audit.ErrQueryUnsupported) {
			util.RespondWithError(c, http.StatusNotImplemented, "Audit search requires Elasticsearch", err)
			return
		}
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		return
	}
	util.RespondOK(c, http.StatusOK, logs, "")
}
