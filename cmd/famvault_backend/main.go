package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	portsrepo "github.com/famvault/famvault-backend/internal/core/ports/repositories"

	"github.com/famvault/famvault-backend/internal/adapters/database/pgsql"
	"github.com/famvault/famvault-backend/internal/adapters/rates"
	portsprov "github.com/famvault/famvault-backend/internal/core/ports/providers"
	"github.com/famvault/famvault-backend/internal/core/services"
	"github.com/famvault/famvault-backend/internal/handlers"
	"github.com/famvault/famvault-backend/internal/middleware"
	"github.com/famvault/famvault-backend/internal/platform/config"
	"github.com/famvault/famvault-backend/internal/utils"
	"github.com/famvault/famvault-backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

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
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
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

	if err := utils.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := portsrepo.RepositoryProvider{
		RateCacheRepo: pgsql.NewPgxRateCacheRepository(dbPool),
		SettingsRepo:  pgsql.NewPgxSettingsRepository(dbPool),
		UserRepo:      pgsql.NewPgxUserRepository(dbPool),
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, buildRateProviders(cfg))

	// Warm the rate table before serving; whatever layer answers, the table
	// is never empty after this.
	source := serviceContainer.Rates.Initialize(context.Background())
	logger.Info("Exchange rates initialized", slog.String("source", string(source)))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	if limiterMiddleware := buildRateLimiter(cfg, logger); limiterMiddleware != nil {
		r.Use(limiterMiddleware)
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRateProviders wires the live feed when one is configured, with the
// built-in static table as the stand-in behind it.
func buildRateProviders(cfg *config.Config) []portsprov.RateProvider {
	var providers []portsprov.RateProvider
	if cfg.RatesProviderURL != "" {
		providers = append(providers, rates.NewHTTPProvider(cfg.RatesProviderURL, cfg.RatesProviderTimeout))
	}
	providers = append(providers, rates.NewStaticProvider())
	return providers
}

func buildRateLimiter(cfg *config.Config, logger *slog.Logger) gin.HandlerFunc {
	if cfg.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT value, rate limiting disabled", slog.String("value", cfg.RateLimit))
		return nil
	}
	return middleware.RateLimit(limiter.New(memorystore.NewStore(), rate))
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations, using the
	// pgx/v5/stdlib driver to be compatible with the main pool.
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
