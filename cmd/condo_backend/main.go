package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jdvillegas/condo_mgmt_app/internal/adapters/database/pgsql"
	"github.com/jdvillegas/condo_mgmt_app/internal/adapters/ratesource"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/handlers"
	"github.com/jdvillegas/condo_mgmt_app/internal/middleware"
	"github.com/jdvillegas/condo_mgmt_app/internal/platform/config"
	"github.com/jdvillegas/condo_mgmt_app/internal/utils"
	"github.com/jdvillegas/condo_mgmt_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Condo Management Backend API
// @version 1.0
// @description Backend for condominium administration: due records, declared-payment reconciliation, exchange rates and owner balances.

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

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire repositories and services
	repos := portsrepo.RepositoryProvider{
		DueRepo:  pgsql.NewPgxDueRepository(dbPool),
		RateRepo: pgsql.NewPgxRateRepository(dbPool),
		UnitRepo: pgsql.NewPgxUnitRepository(dbPool),
		UserRepo: pgsql.NewPgxUserRepository(dbPool),
	}
	fetcher := ratesource.NewHTTPFetcher(cfg.RateSourceURL)
	container := services.NewServiceContainer(cfg, repos, fetcher)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))
	if cfg.RateLimitPerMinute > 0 {
		limiterInstance := limiter.New(memory.NewStore(), limiter.Rate{
			Period: time.Minute,
			Limit:  int64(cfg.RateLimitPerMinute),
		})
		r.Use(middleware.RateLimit(limiterInstance))
	}
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	scheduler := startRateSync(cfg, container.Rate, logger)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// startRateSync schedules the periodic exchange-rate sync. A nil return
// means the job is disabled by configuration.
func startRateSync(cfg *config.Config, rateSvc portssvc.RateSvcFacade, logger *slog.Logger) *cron.Cron {
	if cfg.RateSyncSpec == "" {
		logger.Info("Rate sync disabled (RATE_SYNC_SPEC is empty)")
		return nil
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.RateSyncSpec, func() {
		sample, err := rateSvc.SyncNow(context.Background())
		if err != nil {
			logger.Error("Scheduled rate sync failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("Scheduled rate sync completed",
			slog.String("currency", sample.CurrencyCode),
			slog.String("value", sample.Value.String()),
			slog.String("source", sample.Source),
		)
	})
	if err != nil {
		logger.Error("Invalid rate sync spec, job not scheduled",
			slog.String("spec", cfg.RateSyncSpec),
			slog.String("error", err.Error()),
		)
		return nil
	}

	scheduler.Start()
	logger.Info("Rate sync scheduled", slog.String("spec", cfg.RateSyncSpec))
	return scheduler
}
