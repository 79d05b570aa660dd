package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/blog-api/audit"
	"github.com/dev-mohitbeniwal/blog-api/auth"
	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/controller"
	"github.com/dev-mohitbeniwal/blog-api/db"
	logger "github.com/dev-mohitbeniwal/blog-api/logging"
	"github.com/dev-mohitbeniwal/blog-api/router"
	"github.com/dev-mohitbeniwal/blog-api/service"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

// overridden during build with ldflags
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "blog-api",
		Usage:   "Blog content REST API",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: ".",
				Usage: "directory containing config.yaml",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply pending database migrations and exit",
				Action: migrate,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func loadConfig(cmd *cli.Command) (*config.Configuration, error) {
	cfg, err := config.InitConfig(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	logger.InitLogger(cfg.Log.Level, cfg.Log.Dir)
	return cfg, nil
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// OpenSQLite applies pending migrations before returning.
	conn, err := db.OpenSQLite(cfg.Database)
	if err != nil {
		return err
	}
	db.CloseSQLite(conn)
	logger.Info("Database is up to date", zap.String("path", cfg.Database.Path))
	return nil
}

func newAuditRepository(cfg config.ElasticsearchConfiguration) audit.Repository {
	if !cfg.Enabled {
		return audit.NewLogRepository()
	}
	repo, err := audit.NewElasticsearchRepository(cfg)
	if err != nil {
		logger.Warn("Elasticsearch unavailable, writing audit logs to the application log", zap.Error(err))
		return audit.NewLogRepository()
	}
	return repo
}

func serve(ctx context.Context, cmd *cli.Command) error {
	// Initialize configuration
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Initialize the relational store
	conn, err := db.OpenSQLite(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseSQLite(conn)

	// Initialize Redis
	redisClient, err := db.NewRedis(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis(redisClient)

	// Initialize the blob store
	blobs, err := db.NewBlobStore(cfg.Media.Dir)
	if err != nil {
		logger.Fatal("Failed to initialize media store", zap.Error(err))
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	busCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	eventBus.Start(busCtx)

	// Initialize utilities
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService(redisClient, cfg.Cache)
	rateLimiter := util.NewRateLimiter(redisClient)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	inference := util.NewInferenceClient(cfg.AI)
	if !inference.Configured() {
		logger.Warn("No inference endpoint configured, AI endpoints will answer 502")
	}

	// Subscribers
	auditService := audit.NewService(newAuditRepository(cfg.Elasticsearch))
	audit.NewRecorder(auditService).Register(eventBus)
	util.NewNotificationService().Register(eventBus)

	// Initialize services
	services, err := service.InitializeServices(conn, blobs, inference, issuer, validationUtil, cacheService, eventBus, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Initialize controllers
	controllers := controller.InitializeControllers(services, auditService, cacheService, cfg.Media.MaxSize, version,
		healthChecks(conn, redisClient, blobs)...)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, rateLimiter, issuer, cfg)

	// Set up the server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight event handlers finish their audit and notification writes.
	eventBus.Wait()
	logger.Info("Server exiting")
	return nil
}

func healthChecks(conn *sql.DB, redisClient *redis.Client, blobs *db.BlobStore) []controller.HealthCheck {
	return []controller.HealthCheck{
		{Name: "database", Ping: conn.PingContext},
		{Name: "cache", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		{Name: "media", Ping: blobs.Ping},
	}
}
