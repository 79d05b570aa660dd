// router/router.go

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dev-mohitbeniwal/blog-api/auth"
	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/controller"
	"github.com/dev-mohitbeniwal/blog-api/middleware"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

// SetupRouter builds the engine. Every request passes CORS, then its
// bucket's rate limiter, then access control on protected routes.
func SetupRouter(
	controllers *controller.Controllers,
	limiter *util.RateLimiter,
	issuer *auth.TokenIssuer,
	cfg *config.Configuration,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger(cfg.RateLimit.ClientIPHeader))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	controllers.System.RegisterRoutes(router)

	admin := middleware.RequireAdmin(issuer, cfg.Auth)
	authenticated := middleware.RequireAuth(issuer)

	api := router.Group("/api")
	bucket := func(name string) *gin.RouterGroup {
		return api.Group("", middleware.RateLimiter(limiter, cfg.RateLimit, name))
	}

	controllers.Post.RegisterRoutes(bucket("general"), admin)
	controllers.Comment.RegisterRoutes(bucket("comments"), admin)
	controllers.Category.RegisterRoutes(bucket("categories"), admin)
	controllers.Author.RegisterRoutes(bucket("authors"))
	controllers.Media.RegisterRoutes(bucket("media"), admin)
	controllers.Search.RegisterRoutes(bucket("search"))
	controllers.AI.RegisterRoutes(bucket("ai"), admin)
	controllers.Auth.RegisterRoutes(bucket("auth"), authenticated)
	controllers.Audit.RegisterRoutes(bucket("general"), admin)

	return router
}
