package main

import (
	"context"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/campaign_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/campaign_ledger/internal/core/services"
	"github.com/SscSPs/campaign_ledger/internal/handlers"
	"github.com/SscSPs/campaign_ledger/internal/middleware"
	"github.com/SscSPs/campaign_ledger/internal/observability"
	"github.com/SscSPs/campaign_ledger/internal/platform/config"
	"github.com/SscSPs/campaign_ledger/internal/repositories/cache"
	"github.com/SscSPs/campaign_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/campaign_ledger/internal/repositories/memory"
	"github.com/SscSPs/campaign_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Campaign Ledger API
// @version 1.0
// @description Commitments, payments and memorial days of fundraising campaigns.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, closeStorage, err := openStorage(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	metrics, err := observability.NewLedgerMetrics("", prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("Failed to register metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	campaigns := cache.NewCampaignCache(repos.Store, cfg.CampaignCacheSize, cfg.CampaignCacheTTL)
	serviceContainer := services.NewServiceContainer(repos, campaigns,
		services.WithMetrics(metrics),
		services.WithLocation(cfg.MemorialDayLocation),
	)

	rate, err := limiter.NewRateFromFormatted(cfg.BulkRateLimit)
	if err != nil {
		logger.Error("Invalid bulk rate limit", slog.String("rate", cfg.BulkRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	bulkLimiter := limiter.New(limitermemory.NewStore(), rate)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
	}))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, middleware.RateLimit(bulkLimiter)); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStorage builds the repositories for the configured driver. The returned func releases them.
func openStorage(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		store := memory.New(cfg.MemorialDayLocation)
		if cfg.MemorySeedPath != "" {
			if err := store.LoadSeedFile(cfg.MemorySeedPath); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
			logger.Info("In-memory store seeded", slog.String("path", cfg.MemorySeedPath))
		}
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool, cfg.MemorialDayLocation), func() { database.ClosePgxPool(dbPool) }, nil
}
