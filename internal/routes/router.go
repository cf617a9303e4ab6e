package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"jobtrackr/internal/config"
	"jobtrackr/internal/delivery/http/handler"
	"jobtrackr/internal/denylist"
	"jobtrackr/internal/infrastructure/database/postgres"
	"jobtrackr/internal/logger"
	"jobtrackr/internal/middleware"
	"jobtrackr/internal/usecase/auth"
	"jobtrackr/internal/usecase/job"
	"jobtrackr/pkg/mailer"
)

// SetupRoutes builds the gin engine and wires every handler. rdb may be nil
// when no redis address is configured; logout then stays purely stateless.
func SetupRoutes(cfg *config.Config, db *postgres.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	var resetMailer mailer.Mailer
	if cfg.SMTP.Host != "" {
		resetMailer = mailer.NewSMTP(cfg.SMTP)
	} else {
		resetMailer = mailer.Noop{}
	}

	deny := denylist.New(rdb)

	userRepository := postgres.NewUserRepository(db)
	authService := auth.NewService(userRepository, resetMailer, deny, cfg)
	authHandler := handler.NewAuthHandler(authService)

	jobRepository := postgres.NewJobRepository(db)
	jobService := job.NewService(jobRepository)
	jobHandler := handler.NewJobHandler(jobService)

	authGroup := router.Group("/auth")
	{
		authHandler.RegisterRoutes(authGroup)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(cfg, deny))
		{
			authHandler.RegisterProtectedRoutes(protected)
		}
	}

	jobGroup := router.Group("/jobs")
	jobGroup.Use(middleware.AuthMiddleware(cfg, deny))
	{
		jobHandler.RegisterRoutes(jobGroup)
	}

	logger.Info("All routes initialized")
	return router
}
