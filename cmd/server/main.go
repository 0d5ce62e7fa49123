package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	absenceapp "github.com/hrportal/backend/internal/application/absence"
	expenseapp "github.com/hrportal/backend/internal/application/expense"
	identityapp "github.com/hrportal/backend/internal/application/identity"
	messagingapp "github.com/hrportal/backend/internal/application/messaging"
	"github.com/hrportal/backend/internal/infrastructure/auth"
	"github.com/hrportal/backend/internal/infrastructure/config"
	"github.com/hrportal/backend/internal/infrastructure/event"
	"github.com/hrportal/backend/internal/infrastructure/logger"
	"github.com/hrportal/backend/internal/infrastructure/persistence"
	"github.com/hrportal/backend/internal/infrastructure/storage"
	"github.com/hrportal/backend/internal/interfaces/http/handler"
	"github.com/hrportal/backend/internal/interfaces/http/middleware"
	"github.com/hrportal/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting HR Portal Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.WithLogLevel(logger.MapGormLogLevel(cfg.Log.Level)))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	absenceRequestRepo := persistence.NewGormAbsenceRequestRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	disputeRepo := persistence.NewGormDisputeRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Attachment storage: S3-compatible object store when configured,
	// otherwise an in-memory stub suitable for local development
	var attachmentStorage messagingapp.AttachmentStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3AttachmentStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize attachment storage", zap.Error(err))
		}
		attachmentStorage = s3Storage
		log.Info("Attachment storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	} else {
		attachmentStorage = storage.NewStubAttachmentStorage()
		log.Warn("No storage bucket configured, using in-memory attachment storage stub")
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(profileRepo, jwtService, log)
	profileService := identityapp.NewProfileService(profileRepo, log)
	absenceService := absenceapp.NewAbsenceService(absenceRequestRepo, log)
	periodService := expenseapp.NewPeriodService(periodRepo, log)
	categoryService := expenseapp.NewCategoryService(categoryRepo, log)
	reportService := expenseapp.NewReportService(reportRepo, periodRepo, categoryRepo, disputeRepo, profileRepo, log)
	messageService := messagingapp.NewMessageService(messageRepo, profileRepo, attachmentStorage, log)
	notificationService := messagingapp.NewNotificationService(notificationRepo, log)

	// Initialize event bus and notification handlers
	eventBus := event.NewInMemoryEventBus(log)

	absenceNotificationHandler := messagingapp.NewAbsenceNotificationHandler(notificationRepo, log)
	eventBus.Subscribe(absenceNotificationHandler)

	reportNotificationHandler := messagingapp.NewReportNotificationHandler(notificationRepo, profileRepo, log)
	eventBus.Subscribe(reportNotificationHandler)

	log.Info("Event handlers registered",
		zap.Strings("absence_events", absenceNotificationHandler.EventTypes()),
		zap.Strings("report_events", reportNotificationHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	profileService.SetEventPublisher(eventBus)
	absenceService.SetEventPublisher(eventBus)
	periodService.SetEventPublisher(eventBus)
	reportService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	absenceHandler := handler.NewAbsenceHandler(absenceService)
	periodHandler := handler.NewPeriodHandler(periodService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reportHandler := handler.NewReportHandler(reportService)
	messageHandler := handler.NewMessageHandler(messageService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	authConfig := middleware.AuthMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.AuthWithConfig(authConfig))

	// Auth routes (login and refresh skip authentication)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)

	// Identity routes (own account + profile administration)
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.GET("/me", authHandler.Me)
	identityRoutes.PUT("/me/password", authHandler.ChangePassword)
	identityRoutes.POST("/profiles", profileHandler.Create)
	identityRoutes.GET("/profiles", profileHandler.List)
	identityRoutes.GET("/profiles/:id", profileHandler.GetByID)
	identityRoutes.PUT("/profiles/:id", profileHandler.Update)
	identityRoutes.DELETE("/profiles/:id", profileHandler.Delete)
	identityRoutes.POST("/profiles/:id/activate", profileHandler.Activate)
	identityRoutes.POST("/profiles/:id/deactivate", profileHandler.Deactivate)
	identityRoutes.POST("/profiles/:id/reset-password", profileHandler.ResetPassword)

	// Absence routes (requests and decisions)
	absenceRoutes := router.NewDomainGroup("absence", "/absences")
	absenceRoutes.POST("", absenceHandler.Create)
	absenceRoutes.GET("", absenceHandler.List)
	absenceRoutes.GET("/:id", absenceHandler.GetByID)
	absenceRoutes.POST("/:id/approve", absenceHandler.Approve)
	absenceRoutes.POST("/:id/reject", absenceHandler.Reject)
	absenceRoutes.PUT("/:id/comment", absenceHandler.UpdateComment)

	// Expense routes (periods, categories, reports, disputes)
	expenseRoutes := router.NewDomainGroup("expense", "/expense")
	expenseRoutes.POST("/periods", periodHandler.Create)
	expenseRoutes.GET("/periods", periodHandler.List)
	expenseRoutes.GET("/periods/open", periodHandler.ListOpen)
	expenseRoutes.GET("/periods/:id", periodHandler.GetByID)
	expenseRoutes.POST("/periods/:id/close", periodHandler.Close)

	expenseRoutes.POST("/categories", categoryHandler.Create)
	expenseRoutes.GET("/categories", categoryHandler.List)
	expenseRoutes.GET("/categories/:id", categoryHandler.GetByID)
	expenseRoutes.PUT("/categories/:id", categoryHandler.Update)
	expenseRoutes.POST("/categories/:id/activate", categoryHandler.Activate)
	expenseRoutes.POST("/categories/:id/deactivate", categoryHandler.Deactivate)

	expenseRoutes.POST("/reports", reportHandler.Create)
	expenseRoutes.GET("/reports", reportHandler.List)
	expenseRoutes.GET("/reports/:id", reportHandler.GetByID)
	expenseRoutes.GET("/reports/:id/grid", reportHandler.GetGrid)
	expenseRoutes.PUT("/reports/:id/draft", reportHandler.SaveDraft)
	expenseRoutes.POST("/reports/:id/submit", reportHandler.Submit)
	expenseRoutes.POST("/reports/:id/validate", reportHandler.Validate)
	expenseRoutes.POST("/reports/:id/correct", reportHandler.Correct)
	expenseRoutes.GET("/reports/:id/corrections", reportHandler.ListCorrections)
	expenseRoutes.POST("/reports/:id/disputes", reportHandler.OpenDispute)
	expenseRoutes.GET("/reports/:id/disputes", reportHandler.ListDisputes)
	expenseRoutes.POST("/disputes/:dispute_id/resolve", reportHandler.ResolveDispute)

	// Messaging routes (messages, attachments, notifications)
	messagingRoutes := router.NewDomainGroup("messaging", "/messages")
	messagingRoutes.POST("", messageHandler.Send)
	messagingRoutes.GET("", messageHandler.List)
	messagingRoutes.GET("/:id", messageHandler.GetByID)
	messagingRoutes.POST("/:id/read", messageHandler.MarkRead)
	messagingRoutes.POST("/:id/attachment/upload-url", messageHandler.RequestAttachmentUpload)
	messagingRoutes.POST("/:id/attachment/confirm", messageHandler.ConfirmAttachment)
	messagingRoutes.GET("/:id/attachment/download-url", messageHandler.GetAttachmentURL)

	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread-count", notificationHandler.CountUnread)
	notificationRoutes.POST("/read-all", notificationHandler.MarkAllRead)
	notificationRoutes.POST("/:id/read", notificationHandler.MarkRead)

	// System routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(identityRoutes).
		Register(absenceRoutes).
		Register(expenseRoutes).
		Register(messagingRoutes).
		Register(notificationRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Simple ping at root API level for basic liveness checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
