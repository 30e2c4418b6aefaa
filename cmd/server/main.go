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
	"go.uber.org/zap"

	appidentity "github.com/invoicemgr/backend/internal/application/identity"
	appinvoicing "github.com/invoicemgr/backend/internal/application/invoicing"
	apppartner "github.com/invoicemgr/backend/internal/application/partner"
	appsettings "github.com/invoicemgr/backend/internal/application/settings"
	appworkforce "github.com/invoicemgr/backend/internal/application/workforce"
	"github.com/invoicemgr/backend/internal/infrastructure/auth"
	"github.com/invoicemgr/backend/internal/infrastructure/cache"
	"github.com/invoicemgr/backend/internal/infrastructure/config"
	"github.com/invoicemgr/backend/internal/infrastructure/logger"
	"github.com/invoicemgr/backend/internal/infrastructure/persistence"
	"github.com/invoicemgr/backend/internal/interfaces/http/handler"
	"github.com/invoicemgr/backend/internal/interfaces/http/middleware"
	"github.com/invoicemgr/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	log.Info("starting invoice backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	workerRepo := persistence.NewGormTkaWorkerRepository(db.DB)
	jobRepo := persistence.NewGormJobDescriptionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	seqRepo := persistence.NewGormSequenceRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)

	// Setting cache: Redis when enabled, in-memory otherwise
	cacheFactory := cache.NewSettingCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithTTL(cfg.Invoice.SettingCacheTTL),
	)
	settingCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("failed to create setting cache", zap.Error(err))
	}

	// Services
	settingsService := appsettings.NewService(settingRepo, settingCache, log)
	authService := appidentity.NewAuthService(userRepo, log)
	companyService := apppartner.NewCompanyService(companyRepo, log)
	bankAccountService := apppartner.NewBankAccountService(bankAccountRepo, log)
	workerService := appworkforce.NewWorkerService(workerRepo, log)
	jobService := appworkforce.NewJobService(jobRepo, log)
	allocator := appinvoicing.NewInvoiceNumberAllocator(seqRepo, invoiceRepo, log)
	invoiceService := appinvoicing.NewInvoiceService(
		invoiceRepo, companyRepo, jobRepo, workerRepo, allocator, settingsService, log)
	importService := appinvoicing.NewImportService(
		invoiceService, companyRepo, workerRepo, jobRepo, log)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsService.EnsureDefaults(startupCtx); err != nil {
		cancelStartup()
		log.Fatal("failed to seed default settings", zap.Error(err))
	}
	cancelStartup()

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.Auth)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(
			cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis token blacklist unavailable, falling back to in-memory",
				zap.Error(err))
			blacklist = auth.NewInMemoryTokenBlacklist()
		} else {
			blacklist = redisBlacklist
		}
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Handlers
	handlers := router.Handlers{
		System:      handler.NewSystemHandler(version),
		Auth:        handler.NewAuthHandler(authService, jwtService, blacklist),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Import:      handler.NewImportHandler(importService),
		Company:     handler.NewCompanyHandler(companyService),
		BankAccount: handler.NewBankAccountHandler(bankAccountService),
		Worker:      handler.NewWorkerHandler(workerService),
		Job:         handler.NewJobHandler(jobService),
		Settings:    handler.NewSettingsHandler(settingsService),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", healthHandler(db))

	authMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	router.Setup(engine, handlers, router.Config{
		AuthMiddleware: authMiddleware,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

// healthHandler reports liveness including database connectivity
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log := logger.GetGinLogger(c)
			log.Error("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
