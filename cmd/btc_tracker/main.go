package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/btc_tracker/internal/adapters/ratesource"
	portsrepo "github.com/SscSPs/btc_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/btc_tracker/internal/core/services"
	"github.com/SscSPs/btc_tracker/internal/dto"
	"github.com/SscSPs/btc_tracker/internal/handlers"
	"github.com/SscSPs/btc_tracker/internal/middleware"
	"github.com/SscSPs/btc_tracker/internal/platform/config"
	"github.com/SscSPs/btc_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/btc_tracker/internal/repositories/memory"
	"github.com/SscSPs/btc_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos portsrepo.RepositoryProvider
	if cfg.UseDatabase() {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL, logger); err != nil {
			logger.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	} else {
		logger.Warn("No database configured, transactions are kept in memory")
		repos = memory.NewRepositoryProvider()
	}

	rateClient := ratesource.NewClient(cfg.RateSourceURL, cfg.BTCPriceSourceURL)
	serviceContainer := services.NewServiceContainer(cfg, repos, rateClient, logger)

	if cfg.RefreshOnStartup {
		if err := serviceContainer.RateRefresh.Refresh(ctx); err != nil {
			// Not fatal: conversions report unsupported pairs until the next scheduled refresh.
			logger.Warn("Initial rate refresh failed", slog.String("error", err.Error()))
		}
	}
	if cfg.RateRefreshCron != "" {
		if err := serviceContainer.RateRefresh.Start(cfg.RateRefreshCron); err != nil {
			logger.Error("Failed to start rate refresher", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiterInstance, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.UserIDHeader, middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"}

	// Global middleware (logging, recovery, cors, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig),
		middleware.RateLimit(limiterInstance),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("main_currency", string(cfg.MainCurrency)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := serviceContainer.RateRefresh.Stop(shutdownCtx); err != nil {
		logger.Error("Rate refresher did not stop cleanly", slog.String("error", err.Error()))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}
