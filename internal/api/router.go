package api

import (
	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/internal/api/handlers"
	"github.com/benni94/mazeChromeBE/internal/api/middleware"
	"github.com/benni94/mazeChromeBE/internal/config"
	"github.com/benni94/mazeChromeBE/internal/repository"
	"github.com/benni94/mazeChromeBE/internal/service"
	"github.com/benni94/mazeChromeBE/pkg/database"
	"github.com/benni94/mazeChromeBE/pkg/logger"
	"github.com/benni94/mazeChromeBE/pkg/ratelimit"
)

// SetupRouter wires repositories, services, handlers and middleware.
func SetupRouter(cfg *config.Config, db *database.DB) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Repository
	progressRepo := repository.NewProgressRepository(db)

	// Services
	lockService := service.NewLockService()
	submissionService := service.NewSubmissionService(progressRepo, lockService)
	maintenanceService := service.NewMaintenanceService(progressRepo, cfg.ProtectedTables)
	backupService := service.NewBackupService(db, cfg.BackupFile, cfg.BackupInterval)

	// One submission per source per window; Redis variant when configured so
	// the budget holds across replicas.
	var limiter middleware.Admitter
	if cfg.RedisURL != "" {
		redisLimiter, err := ratelimit.NewRedisSlidingWindow(cfg.RedisURL, cfg.RateLimitMax, cfg.RateLimitWindow)
		if err != nil {
			return nil, err
		}
		limiter = redisLimiter
		logger.Info("Using Redis rate limiter", "url", cfg.RedisURL)
	} else {
		limiter = ratelimit.NewSlidingWindow(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	// Handlers
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	leaderboardHandler := handlers.NewLeaderboardHandler(submissionService)
	adminHandler := handlers.NewAdminHandler(maintenanceService)
	backupHandler := handlers.NewBackupHandler(backupService)
	lockHandler := handlers.NewLockHandler(lockService)

	router.GET("/health", handlers.HealthCheck)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/data",
			middleware.RateLimit(limiter, cfg.RateLimitMax, middleware.IPKeyFunc),
			submissionHandler.Submit)
		apiGroup.GET("/gamedata", leaderboardHandler.List)

		admin := apiGroup.Group("")
		admin.Use(middleware.AdminAuth(cfg))
		{
			admin.POST("/replace-name", adminHandler.ReplaceName)
			admin.DELETE("/clear-table", adminHandler.ClearTable)
			admin.POST("/load-mock-data", adminHandler.LoadMockData)

			admin.POST("/restore-db", backupHandler.Restore)
			admin.POST("/backup-service/start", backupHandler.Start)
			admin.POST("/backup-service/stop", backupHandler.Stop)
			admin.GET("/backup-service/status", backupHandler.Status)

			admin.GET("/submissions-lock/status", lockHandler.Status)
			admin.POST("/submissions-lock/set", lockHandler.Set)
		}
	}

	return router, nil
}
