// Package main provides the entry point for the metrics dashboard service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chybatronik/goMetricsDashboard/internal/config"
	"github.com/chybatronik/goMetricsDashboard/internal/dashboard"
	"github.com/chybatronik/goMetricsDashboard/internal/database"
	"github.com/chybatronik/goMetricsDashboard/internal/handlers"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/middleware"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

const serviceName = "goMetricsDashboard"

var (
	// Build information (set during build)
	Version   = "dev"
	BuildTime = ""
)

// app holds everything that must be released on shutdown
type app struct {
	server  *http.Server
	pool    *pgxpool.Pool
	limiter *middleware.RateLimiter
}

func main() {
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := setupStructuredLogging(appConfig, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	slog.SetDefault(logger.Logger)

	logStartupEvents(logger, appConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := newApp(ctx, appConfig, logger)
	cancel()
	if err != nil {
		logger.Error("Service initialization failed", logging.FieldError, err)
		os.Exit(1)
	}

	go func() {
		logger.Startup("HTTP server starting",
			"host", appConfig.Server.Host,
			"port", appConfig.Server.Port,
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed to start", logging.FieldError, err)
			os.Exit(1)
		}
	}()

	logger.Startup("goMetricsDashboard service started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Startup("Received signal, initiating graceful shutdown", "signal", sig.String())

	a.shutdown(time.Duration(appConfig.Application.ShutdownTimeout)*time.Second, logger)
}

// newApp builds the metrics client, the optional preset store and the HTTP server
func newApp(ctx context.Context, appConfig *config.Config, logger *logging.Logger) (*app, error) {
	client, err := metricsapi.New(metricsapi.Config{
		BaseURL:   appConfig.MetricsAPI.BaseURL,
		Token:     appConfig.MetricsAPI.Token,
		Timeout:   appConfig.MetricsAPI.TimeoutDuration(),
		UserAgent: serviceName + "/" + Version,
		Retry: metricsapi.RetryPolicy{
			MaxRetries:      appConfig.MetricsAPI.MaxRetries,
			InitialInterval: appConfig.MetricsAPI.RetryInitialDuration(),
		},
		Logger: logger.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("metrics API client: %w", err)
	}

	a := &app{}
	var presets *database.PresetStore
	if appConfig.Presets.Enabled {
		logger.Startup("Initializing database connection...")
		a.pool, err = database.NewConnectionPool(ctx, appConfig.Database)
		if err != nil {
			return nil, fmt.Errorf("database connection: %w", err)
		}
		logger.Store("Database connection established successfully")

		logger.Startup("Running database migrations...")
		runner := database.NewMigrationRunner(a.pool, appConfig.Presets.MigrationsDir, logger)
		if err := runner.RunMigrations(ctx); err != nil {
			a.pool.Close()
			return nil, fmt.Errorf("database migrations: %w", err)
		}
		logger.Store("Database migrations completed successfully")

		presets = database.NewPresetStore(a.pool, logger)
	}

	defaultRange := resolveDefaultRange(ctx, appConfig, client, logger)

	if rps := appConfig.Application.RateLimitPerSecond(); rps > 0 {
		a.limiter = middleware.NewRateLimiter(rps, appConfig.Application.RateLimitBurst)
	}

	a.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port),
		Handler:      newRouter(appConfig, client, presets, a.pool, a.limiter, defaultRange, logger),
		ReadTimeout:  time.Duration(appConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(appConfig.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(appConfig.Server.IdleTimeout) * time.Second,
	}
	return a, nil
}

// resolveDefaultRange returns the configured dashboard range. When neither
// bound is configured, the range published by the metrics API is used; an
// unreachable API leaves the range open.
func resolveDefaultRange(ctx context.Context, appConfig *config.Config, client *metricsapi.Client, logger *logging.Logger) metricsapi.DateRange {
	configured := metricsapi.DateRange{
		StartDate: appConfig.Dashboard.DefaultStartDate,
		EndDate:   appConfig.Dashboard.DefaultEndDate,
	}
	if !configured.IsZero() {
		return configured
	}

	fetchCtx, cancel := context.WithTimeout(ctx, appConfig.MetricsAPI.TimeoutDuration())
	defer cancel()
	upstream, err := client.Configuration(fetchCtx)
	if err != nil {
		logger.Warn("Metrics API configuration unavailable, dashboard range left open", logging.FieldError, err)
		return configured
	}

	r := upstream.DefaultRange()
	if err := r.Validate(); err != nil {
		logger.Warn("Ignoring metrics API dashboard range", logging.FieldError, err)
		return configured
	}
	if !r.IsZero() {
		logger.Startup("Using metrics API dashboard range", "start_date", r.StartDate, "end_date", r.EndDate)
	}
	return r
}

// newRouter wires handlers for the configured features. presets and pool are
// nil when saved filters are disabled.
func newRouter(appConfig *config.Config, client *metricsapi.Client, presets *database.PresetStore, pool *pgxpool.Pool, limiter *middleware.RateLimiter, defaultRange metricsapi.DateRange, logger *logging.Logger) http.Handler {
	checkTimeout := time.Duration(appConfig.HealthCheck.Timeout) * time.Second

	healthHandler := handlers.NewHealthHandler(serviceName, Version, logger)
	if appConfig.HealthCheck.Enabled {
		healthHandler.AddChecker(dashboard.NewUpstreamHealthChecker(client, checkTimeout, logger))
		if pool != nil {
			healthHandler.AddOptionalChecker(database.NewHealthChecker(pool, checkTimeout))
		}
	}

	service := dashboard.NewService(client, dashboard.Options{
		Top:            appConfig.Dashboard.Top,
		SectionTimeout: appConfig.Dashboard.SectionTimeoutDuration(),
		Logger:         logger,
	})

	deps := handlers.RouterDeps{
		Logger:        logger,
		Health:        healthHandler,
		Configuration: handlers.NewConfigurationHandler(logger, client),
		RateLimiter:   limiter,
	}
	// a typed nil store must not reach the handler interfaces
	if presets != nil {
		deps.Dashboard = handlers.NewDashboardHandler(logger, dashboard.NewLoader(service), presets, defaultRange)
		deps.Presets = handlers.NewPresetHandler(logger, presets)
	} else {
		deps.Dashboard = handlers.NewDashboardHandler(logger, dashboard.NewLoader(service), nil, defaultRange)
	}

	return handlers.NewRouter(deps)
}

// shutdown drains the HTTP server, then releases the limiter and the pool
func (a *app) shutdown(timeout time.Duration, logger *logging.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Startup("Shutting down HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", logging.FieldError, err)
	} else {
		logger.Startup("HTTP server shutdown completed")
	}

	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.pool != nil {
		logger.Startup("Closing database connections...")
		a.pool.Close()
		logger.Startup("Database connections closed")
	}

	logger.Startup("goMetricsDashboard service shutdown completed")
}

// setupStructuredLogging builds the logger from configuration. When a log
// directory is configured, output is mirrored to a file there and old files
// are removed; the returned closer is then non-nil.
func setupStructuredLogging(cfg *config.Config, console io.Writer) (*logging.Logger, io.Closer, error) {
	out := console
	var file *logging.FileOutput
	if cfg.Logging.Dir != "" {
		var err error
		file, err = logging.OpenFileOutput(cfg.Logging.Dir, console)
		if err != nil {
			return nil, nil, err
		}
		out = file
	}

	logger := logging.New(out, cfg.Logging.Level, cfg.Logging.Format, serviceName, Version).WithServiceContext()

	if file == nil {
		return logger, nil, nil
	}
	removed, err := file.CleanupOldLogs(cfg.Logging.RetentionDays)
	if err != nil {
		logger.Warn("Log cleanup failed", logging.FieldError, err)
	} else if removed > 0 {
		logger.Startup("Old log files removed", "count", removed)
	}
	return logger, file, nil
}

// logStartupEvents logs comprehensive startup information
func logStartupEvents(logger *logging.Logger, cfg *config.Config) {
	logger.Startup("goMetricsDashboard service starting up",
		"version", Version,
		"build_time", BuildTime,
	)

	logger.Startup("configuration loaded successfully",
		"environment", cfg.Application.Environment,
		"log_level", cfg.Logging.Level,
		"server_port", cfg.Server.Port,
		"server_host", cfg.Server.Host,
		"metrics_api_url", cfg.MetricsAPI.BaseURL,
		"metrics_api_retries", cfg.MetricsAPI.MaxRetries,
		"presets_enabled", cfg.Presets.Enabled,
		"health_check_enabled", cfg.HealthCheck.Enabled,
	)
}
