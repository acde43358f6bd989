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
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	basketapp "github.com/appleshop/backend/internal/application/basket"
	catalogapp "github.com/appleshop/backend/internal/application/catalog"
	contentapp "github.com/appleshop/backend/internal/application/content"
	identityapp "github.com/appleshop/backend/internal/application/identity"
	orderapp "github.com/appleshop/backend/internal/application/order"
	reportapp "github.com/appleshop/backend/internal/application/report"
	"github.com/appleshop/backend/internal/infrastructure/auth"
	"github.com/appleshop/backend/internal/infrastructure/config"
	"github.com/appleshop/backend/internal/infrastructure/lock"
	"github.com/appleshop/backend/internal/infrastructure/logger"
	"github.com/appleshop/backend/internal/infrastructure/notify"
	"github.com/appleshop/backend/internal/infrastructure/persistence"
	"github.com/appleshop/backend/internal/infrastructure/printing"
	"github.com/appleshop/backend/internal/infrastructure/scheduler"
	"github.com/appleshop/backend/internal/infrastructure/storage"
	"github.com/appleshop/backend/internal/interfaces/http/handler"
	"github.com/appleshop/backend/internal/interfaces/http/middleware"
	"github.com/appleshop/backend/internal/interfaces/http/router"
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
		_ = log.Sync()
	}()

	log.Info("Starting shop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

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
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	basketRepo := persistence.NewGormBasketRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Checkout lock: Redis when configured, in-memory otherwise.
	// The in-memory lock only serializes checkouts within one process.
	var checkoutLock lock.CheckoutLock = lock.NewInMemoryCheckoutLock()
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unreachable, falling back to in-memory checkout lock", zap.Error(err))
		} else {
			checkoutLock = lock.NewRedisCheckoutLock(redisClient)
			log.Info("Redis checkout lock enabled",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port),
			)
		}
	}

	// Object storage for order confirmation PDFs
	var store storage.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		store = s3Store
		log.Info("Object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		store = storage.NewMemoryObjectStorage()
		log.Warn("No storage bucket configured, documents are kept in memory")
	}

	// PDF renderer. Chrome is only launched when a document is rendered.
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		RemoteURL:      cfg.Printing.RemoteURL,
		NoSandbox:      cfg.Printing.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Outgoing mail
	var mailer notify.Mailer = notify.NopMailer{}
	if cfg.Mail.Enabled {
		mailer = notify.NewSMTPMailer(cfg.Mail, log)
		log.Info("SMTP mailer enabled", zap.String("host", cfg.Mail.Host))
	}

	// Minimum order sum comes from config as a decimal string
	minOrderSum, err := decimal.NewFromString(cfg.Checkout.MinOrderSum)
	if err != nil {
		log.Fatal("Invalid checkout.min_order_sum", zap.String("value", cfg.Checkout.MinOrderSum), zap.Error(err))
	}

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)

	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, discountRepo)
	discountService := catalogapp.NewDiscountService(discountRepo, productRepo)
	basketService := basketapp.NewService(basketRepo, productRepo, discountRepo)
	articleService := contentapp.NewArticleService(articleRepo, categoryRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo)
	dashboardService := reportapp.NewDashboardService(userRepo, productRepo, orderRepo)

	documentService := orderapp.NewDocumentService(
		orderRepo, productRepo, renderer, store, cfg.Storage.PresignExpiration, log,
	)

	// With printing disabled, orders complete without generating
	// confirmations; the download endpoint still renders on demand.
	var documents orderapp.DocumentGenerator
	if cfg.Printing.Enabled {
		documents = documentService
	}
	orderService := orderapp.NewOrderService(orderRepo, documents, log)
	checkoutService := orderapp.NewCheckoutService(
		basketRepo, productRepo, orderRepo,
		checkoutLock, minOrderSum, cfg.Checkout.LockTTL, log,
	)

	// Background jobs
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(scheduler.Config{TaskTimeout: cfg.Scheduler.JobTimeout}, log)
		sched.Register(
			orderapp.NewStaleOrderTask(orderRepo, cfg.Scheduler.StaleOrderMaxAge, cfg.Scheduler.BatchSize, log),
			cfg.Scheduler.StaleOrderInterval, false,
		)
		if cfg.Printing.Enabled {
			sched.Register(
				orderapp.NewDocumentBackfillTask(orderRepo, documentService, cfg.Scheduler.BatchSize, log),
				cfg.Scheduler.DocumentInterval, false,
			)
		}
		if cfg.Mail.Enabled {
			sched.Register(
				reportapp.NewStatsReportTask(dashboardService, userRepo, mailer, log),
				cfg.Scheduler.StatsReportInterval, false,
			)
		}
		if err := sched.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := sched.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.Duration("stale_order_interval", cfg.Scheduler.StaleOrderInterval),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// Initialize HTTP handlers
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	discountHandler := handler.NewDiscountHandler(discountService)
	basketHandler := handler.NewBasketHandler(basketService)
	orderHandler := handler.NewOrderHandler(checkoutService, orderService, documentService)
	articleHandler := handler.NewArticleHandler(articleService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

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
	// security headers, CORS, body limit, then optional rate limiting.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
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

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	authRequired := middleware.JWTAuth(jwtService)
	adminOnly := middleware.RequireAdmin()

	// Public storefront: catalog and article reads need no account
	shopRoutes := router.NewDomainGroup("shop", "/shop")
	shopRoutes.GET("/categories", categoryHandler.List)
	shopRoutes.GET("/categories/:id", categoryHandler.GetByID)
	shopRoutes.GET("/categories/:id/products", productHandler.ListByCategory)
	shopRoutes.GET("/products", productHandler.List)
	shopRoutes.GET("/products/:id", productHandler.GetByID)
	shopRoutes.GET("/products/:id/discounts", discountHandler.ListByProduct)
	shopRoutes.GET("/products/:id/discount", discountHandler.Active)
	shopRoutes.GET("/articles", articleHandler.List)
	shopRoutes.GET("/articles/recent", articleHandler.Recent)
	shopRoutes.GET("/articles/:id", articleHandler.GetByID)
	shopRoutes.GET("/categories/:id/articles", articleHandler.ByCategory)

	// Public auth endpoints, throttled per IP to slow credential guessing
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.RateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitAuthRequests, cfg.HTTP.RateLimitWindow)
		authRoutes.Use(middleware.AuthRateLimit(authLimiter))
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)

	// Account endpoints for the authenticated user
	accountRoutes := router.NewDomainGroup("account", "/auth")
	accountRoutes.Use(authRequired)
	accountRoutes.GET("/me", authHandler.Me)
	accountRoutes.PUT("/profile", authHandler.UpdateProfile)
	accountRoutes.PUT("/password", authHandler.ChangePassword)

	// Basket endpoints
	basketRoutes := router.NewDomainGroup("basket", "/basket")
	basketRoutes.Use(authRequired)
	basketRoutes.GET("", basketHandler.Get)
	basketRoutes.DELETE("", basketHandler.Clear)
	basketRoutes.POST("/items", basketHandler.AddItem)
	basketRoutes.PUT("/items/:id", basketHandler.UpdateItem)
	basketRoutes.DELETE("/items/:id", basketHandler.RemoveItem)

	// Order endpoints
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.Use(authRequired)
	orderRoutes.POST("/checkout", orderHandler.Checkout)
	orderRoutes.GET("", orderHandler.ListMine)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.GET("/:id/document", orderHandler.DocumentURL)

	// Admin endpoints
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(authRequired, adminOnly)
	adminRoutes.POST("/categories", categoryHandler.Create)
	adminRoutes.PUT("/categories/:id", categoryHandler.Update)
	adminRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	adminRoutes.POST("/products", productHandler.Create)
	adminRoutes.PUT("/products/:id", productHandler.Update)
	adminRoutes.POST("/products/:id/activate", productHandler.Activate)
	adminRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)
	adminRoutes.DELETE("/products/:id", productHandler.Delete)
	adminRoutes.POST("/discounts", discountHandler.Create)
	adminRoutes.GET("/discounts", discountHandler.List)
	adminRoutes.GET("/discounts/:id", discountHandler.GetByID)
	adminRoutes.PUT("/discounts/:id", discountHandler.Update)
	adminRoutes.DELETE("/discounts/:id", discountHandler.Delete)
	adminRoutes.POST("/articles", articleHandler.Create)
	adminRoutes.PUT("/articles/:id", articleHandler.Update)
	adminRoutes.POST("/articles/:id/categories", articleHandler.LinkCategory)
	adminRoutes.DELETE("/articles/:id/categories/:category_id", articleHandler.UnlinkCategory)
	adminRoutes.DELETE("/articles/:id", articleHandler.Delete)
	adminRoutes.GET("/orders", orderHandler.List)
	adminRoutes.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	adminRoutes.GET("/users", userHandler.List)
	adminRoutes.GET("/users/:id", userHandler.GetByID)
	adminRoutes.PUT("/users/:id/role", userHandler.ChangeRole)
	adminRoutes.POST("/users/:id/activate", userHandler.Activate)
	adminRoutes.POST("/users/:id/deactivate", userHandler.Deactivate)
	adminRoutes.DELETE("/users/:id", userHandler.Delete)
	adminRoutes.GET("/dashboard/stats", dashboardHandler.Stats)

	// System endpoints
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(shopRoutes).
		Register(authRoutes).
		Register(accountRoutes).
		Register(basketRoutes).
		Register(orderRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	// Setup routes
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
