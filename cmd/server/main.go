package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	discountapp "github.com/modernstore/backend/internal/application/discount"
	orderapp "github.com/modernstore/backend/internal/application/order"
	reportapp "github.com/modernstore/backend/internal/application/report"
	"github.com/modernstore/backend/internal/infrastructure/auth"
	"github.com/modernstore/backend/internal/infrastructure/cache"
	"github.com/modernstore/backend/internal/infrastructure/config"
	"github.com/modernstore/backend/internal/infrastructure/logger"
	"github.com/modernstore/backend/internal/infrastructure/persistence"
	"github.com/modernstore/backend/internal/interfaces/http/handler"
	"github.com/modernstore/backend/internal/interfaces/http/middleware"
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

	log.Info("Starting store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Dashboard cache: Redis when configured, process memory otherwise
	var dashboardCache reportapp.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		dashboardCache = redisCache
		log.Info("Redis cache connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		dashboardCache = cache.NewInMemoryCache()
	}

	// Application services
	checkoutService := orderapp.NewCheckoutService(txScope)
	adminOrderService := orderapp.NewAdminService(orderRepo)
	previewService := discountapp.NewPreviewService(discountRepo)
	dashboardService := reportapp.NewDashboardService(salesReportRepo, productRepo, orderRepo, dashboardCache)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Handlers
	orderHandler := handler.NewOrderHandler(checkoutService)
	discountHandler := handler.NewDiscountHandler(previewService)
	adminOrderHandler := handler.NewAdminOrderHandler(adminOrderService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so recovery and logging carry it.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (outside API versioning, unauthenticated)
	engine.GET("/health", healthHandler(db))

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtService, log))

	// Storefront routes
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.GetByID)
	api.POST("/discounts/preview", discountHandler.Preview)

	// Back-office routes
	admin := api.Group("/admin", middleware.RequireAdmin())
	admin.GET("/orders", adminOrderHandler.List)
	admin.GET("/orders/:id", adminOrderHandler.GetByID)
	admin.PATCH("/orders/:id/status", adminOrderHandler.UpdateStatus)
	admin.GET("/dashboard/stats", dashboardHandler.Stats)
	admin.GET("/dashboard/sales", dashboardHandler.Sales)
	admin.GET("/dashboard/top-products", dashboardHandler.TopProducts)
	admin.GET("/dashboard/recent-orders", dashboardHandler.RecentOrders)

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

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			reqLog := logger.GetGinLogger(c)
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
