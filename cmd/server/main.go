package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/garmsource/backend/internal/application/audit"
	catalogapp "github.com/garmsource/backend/internal/application/catalog"
	financeapp "github.com/garmsource/backend/internal/application/finance"
	orderingapp "github.com/garmsource/backend/internal/application/ordering"
	partnerapp "github.com/garmsource/backend/internal/application/partner"
	reportapp "github.com/garmsource/backend/internal/application/report"
	"github.com/garmsource/backend/internal/infrastructure/config"
	"github.com/garmsource/backend/internal/infrastructure/event"
	"github.com/garmsource/backend/internal/infrastructure/logger"
	"github.com/garmsource/backend/internal/infrastructure/persistence"
	"github.com/garmsource/backend/internal/interfaces/http/handler"
	"github.com/garmsource/backend/internal/interfaces/http/middleware"
	"github.com/garmsource/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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

	log.Info("Starting garment sourcing backend",
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
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	auditLogRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Initialize application services
	orderService := orderingapp.NewOrderService(orderRepo, productRepo, customerRepo, nil)
	paymentService := orderingapp.NewPaymentService(orderRepo, nil)
	productionService := orderingapp.NewProductionService(orderRepo, nil)
	productService := catalogapp.NewProductService(productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	expenseService := financeapp.NewExpenseService(expenseRepo, nil)
	auditService := auditapp.NewAuditService(auditLogRepo, nil)
	dashboardService := reportapp.NewDashboardService(orderRepo, productRepo, expenseRepo, nil, log)
	dashboardService.SetDefaults(cfg.Dashboard.SeriesMonths, cfg.Dashboard.TopProducts)

	// Initialize event bus and the audit trail recorder. The recorder is
	// the only event subscriber: every domain event that maps to an audit
	// action ends up as one row in the audit log.
	eventBus := event.NewInMemoryEventBus(log)
	eventRecorder := auditapp.NewEventRecorder(auditLogRepo, log)
	eventBus.Subscribe(eventRecorder)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	orderService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)
	productionService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	customerService.SetEventPublisher(eventBus)
	expenseService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, paymentService, productionService)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService, orderService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	auditHandler := handler.NewAuditHandler(auditService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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
	// 4. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(orderHandler)
	r.Register(productHandler)
	r.Register(customerHandler)
	r.Register(expenseHandler)
	r.Register(auditHandler)
	r.Register(dashboardHandler)
	r.Register(healthHandler)
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
