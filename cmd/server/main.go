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

	stockapp "github.com/wasteworks/backend/internal/application/stock"
	wasteapp "github.com/wasteworks/backend/internal/application/waste"
	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/infrastructure/auth"
	"github.com/wasteworks/backend/internal/infrastructure/config"
	"github.com/wasteworks/backend/internal/infrastructure/event"
	"github.com/wasteworks/backend/internal/infrastructure/logger"
	"github.com/wasteworks/backend/internal/infrastructure/persistence"
	"github.com/wasteworks/backend/internal/infrastructure/scheduler"
	"github.com/wasteworks/backend/internal/interfaces/http/handler"
	"github.com/wasteworks/backend/internal/interfaces/http/middleware"
	"github.com/wasteworks/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting waste reception backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
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
	receptionRepo := persistence.NewGormReceptionRepository(db.DB)
	handlingTypeRepo := persistence.NewGormHandlingTypeRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	reminderRepo := persistence.NewGormReminderRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)

	// Initialize application services
	refData := wasteapp.NewPartnerReferenceData(partnerRepo, log)
	refData.ResolveSystemLocations(context.Background(), locationRepo)
	txScope := persistence.NewGormTransactionScope(db.DB)
	receptionService := wasteapp.NewReceptionService(txScope, receptionRepo, productRepo, refData, log)
	receptionService.SetAllowedProductTypes(allowedProductTypes(cfg.Reception.AllowedProductTypes))

	handlingTypeService := wasteapp.NewHandlingTypeService(handlingTypeRepo)
	lotService := stockapp.NewLotService(lotRepo)
	lotExpiryService := stockapp.NewLotExpiryService(lotRepo, reminderRepo, productRepo, log)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)
	receptionService.SetEventPublisher(eventBus)

	// Sale order confirmed -> draft reception for waste collection orders
	saleOrderHandler := wasteapp.NewSaleOrderConfirmedHandler(receptionService, log)
	eventBus.Subscribe(saleOrderHandler)
	log.Info("Event handlers registered",
		zap.Strings("sale_order_confirmed_events", saleOrderHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize expiry sweep scheduler (if enabled)
	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.SchedulerConfig{
			Enabled:           cfg.Scheduler.Enabled,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}
		sweepExecutor := scheduler.NewSweepExecutor(lotExpiryService, log)
		jobScheduler := scheduler.NewScheduler(schedulerConfig, sweepExecutor, log)
		if err := jobScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()

		sweepHour, sweepMinute, err := scheduler.ParseCronSchedule(cfg.Scheduler.DailyCronSchedule)
		if err != nil {
			log.Fatal("Invalid daily cron schedule",
				zap.String("schedule", cfg.Scheduler.DailyCronSchedule),
				zap.Error(err))
		}
		triggerConfig := scheduler.ExpiryTriggerConfig{
			SweepHour:     sweepHour,
			SweepMinute:   sweepMinute,
			CheckInterval: cfg.Scheduler.CheckInterval,
		}
		expiryTrigger := scheduler.NewExpiryTrigger(triggerConfig, jobScheduler, log)
		if err := expiryTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start expiry trigger", zap.Error(err))
		}
		defer func() {
			if err := expiryTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping expiry trigger", zap.Error(err))
			}
		}()
		log.Info("Expiry sweep scheduler started",
			zap.Int("sweep_hour", sweepHour),
			zap.Int("sweep_minute", sweepMinute),
		)
	}

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	receptionHandler := handler.NewReceptionHandler(receptionService)
	receptionHandler.SetDefaultSkipBackorderPrompts(cfg.Reception.SkipBackorderPrompts)
	handlingTypeHandler := handler.NewHandlingTypeHandler(handlingTypeService)
	lotHandler := handler.NewLotHandler(lotService, lotExpiryService)
	systemHandler := handler.NewSystemHandler(db.DB, cfg.App.Name, cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, body limit, rate limit, auth, tenant.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/ready",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	tenantConfig := middleware.DefaultTenantConfig()
	tenantConfig.SkipPaths = []string{"/health", "/api/v1/health", "/api/v1/ready"}
	engine.Use(middleware.TenantMiddlewareWithConfig(tenantConfig))

	// Liveness endpoint outside API versioning
	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
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
	})

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(receptionHandler).
		Register(handlingTypeHandler).
		Register(lotHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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

// allowedProductTypes converts configured type names, dropping invalid ones
func allowedProductTypes(names []string) []catalog.ProductType {
	types := make([]catalog.ProductType, 0, len(names))
	for _, name := range names {
		t := catalog.ProductType(name)
		if t.IsValid() {
			types = append(types, t)
		}
	}
	return types
}
