// controller/system_controller.go
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc"

	"github.com/dev-mohitbeniwal/blog-api/util"
)

// HealthCheck is one dependency pinged by /health.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type SystemController struct {
	checks  []HealthCheck
	version string
	started time.Time
}

func NewSystemController(version string, checks ...HealthCheck) *SystemController {
	return &SystemController{checks: checks, version: version, started: time.Now()}
}

func (sc *SystemController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", sc.Health)
	r.GET("/api", sc.Catalog)
}

// Health always answers 200; failing dependencies mark the service degraded.
func (sc *SystemController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	results := make([]string, len(sc.checks))
	var wg conc.WaitGroup
	for i, check := range sc.checks {
		wg.Go(func() {
			if err := check.Ping(ctx); err != nil {
				results[i] = "unavailable"
				return
			}
			results[i] = "ok"
		})
	}
	wg.Wait()

	status := "ok"
	deps := make(map[string]string, len(sc.checks))
	for i, check := range sc.checks {
		deps[check.Name] = results[i]
		if results[i] != "ok" {
			status = "degraded"
		}
	}

	util.RespondOK(c, http.StatusOK, gin.H{
		"status":       status,
		"version":      sc.version,
		"uptime":       time.Since(sc.started).Round(time.Second).String(),
		"dependencies": deps,
	}, "")
}

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Auth   string `json:"auth"`
}

var catalog = []endpoint{
	{"GET", "/api/posts", "public"},
	{"GET", "/api/posts/:slug", "public"},
	{"POST", "/api/posts", "admin"},
	{"PUT", "/api/posts/:id", "admin"},
	{"DELETE", "/api/posts/:id", "admin"},
	{"POST", "/api/posts/:id/views", "public"},
	{"GET", "/api/posts/:id/comments", "public"},
	{"POST", "/api/posts/:id/comments", "public"},
	{"GET", "/api/categories", "public"},
	{"GET", "/api/categories/:slug", "public"},
	{"POST", "/api/categories", "admin"},
	{"PUT", "/api/categories/:id", "admin"},
	{"DELETE", "/api/categories/:id", "admin"},
	{"GET", "/api/authors", "public"},
	{"GET", "/api/authors/:id", "public"},
	{"GET", "/api/authors/:id/posts", "public"},
	{"PUT", "/api/comments/:id/status", "admin"},
	{"DELETE", "/api/comments/:id", "admin"},
	{"POST", "/api/media/upload", "admin"},
	{"GET", "/api/media/:key", "public"},
	{"DELETE", "/api/media/:key", "admin"},
	{"GET", "/api/search", "public"},
	{"POST", "/api/ai/generate-excerpt", "admin"},
	{"POST", "/api/ai/generate-tags", "admin"},
	{"POST", "/api/ai/content-analysis", "admin"},
	{"POST", "/api/auth/login", "public"},
	{"POST", "/api/auth/register", "public"},
	{"GET", "/api/auth/me", "bearer"},
	{"GET", "/api/audit", "admin"},
	{"GET", "/health", "public"},
	{"GET", "/metrics", "public"},
}

func (sc *SystemController) Catalog(c *gin.Context) {
	util.RespondOK(c, http.StatusOK, gin.H{
		"name":      "blog-api",
		"version":   sc.version,
		"endpoints": catalog,
	}, "")
}
