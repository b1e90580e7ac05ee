package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/contesthub/backend/internal/data"
	"github.com/contesthub/backend/internal/handler"
	"github.com/contesthub/backend/internal/infrastructure"
	"github.com/contesthub/backend/internal/judge"
	"github.com/contesthub/backend/internal/middleware"
	"github.com/contesthub/backend/internal/repository"
	"github.com/contesthub/backend/internal/service"
)

func main() {
	// Load configuration
	config := infrastructure.LoadConfig()

	// Initialize logger
	logger, err := infrastructure.NewLogger(config.Server.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.SyncLogger(logger)

	logger.Info("Starting ContestHub API",
		zap.String("environment", config.Server.Environment),
		zap.Int("port", config.Server.Port),
	)

	// Initialize context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize telemetry
	telemetry, err := infrastructure.NewTelemetry(ctx, &config.Telemetry, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		telemetry.Shutdown(shutdownCtx)
	}()

	// Create metrics
	metrics, err := telemetry.CreateMetrics()
	if err != nil {
		logger.Error("Failed to create metrics", zap.Error(err))
		os.Exit(1)
	}

	// Initialize database
	database, err := infrastructure.NewDatabase(&config.Database, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	// Seed demo data outside production
	if config.Server.Environment != "production" {
		seeder := data.NewSeeder(database.DB, logger)
		if err := seeder.SeedDemoData(); err != nil {
			logger.Error("Failed to seed demo data", zap.Error(err))
			os.Exit(1)
		}
	}

	// Redis backs the shared rate limit counters
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr(),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		// The limiter fails open, so a missing redis is not fatal
		logger.Warn("Redis unavailable, rate limiting degraded", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	contestRepo := repository.NewContestRepository(database.DB)
	questionRepo := repository.NewMcqQuestionRepository(database.DB)
	submissionRepo := repository.NewMcqSubmissionRepository(database.DB)
	problemRepo := repository.NewDsaProblemRepository(database.DB)

	// Initialize services
	userService := service.NewUserService(userRepo, &config.JWT, telemetry.Tracer, logger)
	contestService := service.NewContestService(contestRepo, questionRepo, submissionRepo, telemetry.Tracer, logger)
	problemService := service.NewProblemService(problemRepo, contestRepo, judge.NewUnavailable(), telemetry.Tracer, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	contestHandler := handler.NewContestHandler(contestService)
	problemHandler := handler.NewProblemHandler(problemService)

	// Setup Gin router
	if config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add global middleware
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	router.Use(middleware.TracingMiddleware(telemetry.Tracer))
	router.Use(middleware.MetricsMiddleware(metrics))

	// Rate limit policies per route scope
	limit := func(policy middleware.RateLimitPolicy) gin.HandlerFunc {
		if !config.RateLimit.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimitMiddleware(rdb, policy, logger)
	}
	authLimiter := limit(middleware.RateLimitPolicy{
		Scope:  "auth",
		Window: config.RateLimit.AuthWindow,
		Max:    config.RateLimit.AuthMax,
	})
	apiLimiter := limit(middleware.RateLimitPolicy{
		Scope:  "api",
		Window: config.RateLimit.APIWindow,
		Max:    config.RateLimit.APIMax,
	})
	submissionLimiter := limit(middleware.RateLimitPolicy{
		Scope:  "submission",
		Window: config.RateLimit.SubmissionWindow,
		Max:    config.RateLimit.SubmissionMax,
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": config.Telemetry.ServiceVersion,
		})
	})

	// Metrics endpoint for Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		auth.Use(authLimiter)
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(userService))
		{
			users := protected.Group("/users")
			users.Use(apiLimiter)
			{
				users.GET("/me", userHandler.GetCurrentUser)
			}

			contests := protected.Group("/contests")
			{
				contests.POST("/create", apiLimiter, middleware.RequireCreator(), contestHandler.CreateContest)
				contests.GET("/:contestId", apiLimiter, contestHandler.GetContest)
				contests.POST("/:contestId/mcq", apiLimiter, middleware.RequireCreator(), contestHandler.AddMcqQuestion)
				contests.POST("/:contestId/mcq/:mcqId/submit", submissionLimiter, contestHandler.SubmitAnswer)
			}

			// One wildcard name per segment position: the router rejects
			// mixing :contestId and :problemId here, so the handlers
			// disambiguate what :id refers to.
			problems := protected.Group("/problems")
			{
				problems.POST("/:id/dsa", apiLimiter, middleware.RequireCreator(), problemHandler.AddProblem)
				problems.GET("/:id", apiLimiter, problemHandler.GetProblem)
				problems.POST("/:id/submit", submissionLimiter, problemHandler.SubmitSolution)
			}
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server starting",
			zap.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
