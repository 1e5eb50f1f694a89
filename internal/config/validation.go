package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// Validate validates the configuration and returns any errors
func Validate(config *Config) error {
	var validationErrors []string

	if err := validateMetricsAPIConfig(&config.MetricsAPI); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateDashboardConfig(&config.Dashboard); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	// Database settings matter only when presets are persisted
	if config.Presets.Enabled {
		if err := validateDatabaseConfig(&config.Database); err != nil {
			validationErrors = append(validationErrors, err.Error())
		}
		if config.Presets.MigrationsDir == "" {
			validationErrors = append(validationErrors, "migrations directory is required when presets are enabled")
		}
	}

	if err := validateServerConfig(&config.Server); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateApplicationConfig(&config.Application); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(validationErrors, "; "))
	}

	return nil
}

// validateMetricsAPIConfig validates the metrics API connection settings
func validateMetricsAPIConfig(api *MetricsAPIConfig) error {
	if api.BaseURL == "" {
		return errors.New("metrics API base URL is required")
	}

	u, err := url.Parse(api.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid metrics API base URL: %s, must be an absolute http(s) URL", api.BaseURL)
	}

	if api.Timeout <= 0 {
		return errors.New("metrics API timeout must be positive")
	}

	if api.MaxRetries < 0 || api.MaxRetries > 10 {
		return errors.New("metrics API max retries must be between 0 and 10")
	}

	if api.MaxRetries > 0 && api.RetryInitialInterval <= 0 {
		return errors.New("metrics API retry interval must be positive when retries are enabled")
	}

	return nil
}

// validateDashboardConfig validates the dashboard defaults
func validateDashboardConfig(d *DashboardConfig) error {
	r := metricsapi.DateRange{StartDate: d.DefaultStartDate, EndDate: d.DefaultEndDate}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid default dashboard range: %w", err)
	}

	if d.Top <= 0 {
		return errors.New("dashboard top must be positive")
	}

	if d.SectionTimeout <= 0 {
		return errors.New("dashboard section timeout must be positive")
	}

	return nil
}

// validateDatabaseConfig validates database configuration
func validateDatabaseConfig(db *DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database host is required")
	}

	if db.Port <= 0 || db.Port > 65535 {
		return errors.New("database port must be between 1 and 65535")
	}

	if db.User == "" {
		return errors.New("database user is required")
	}

	if db.Password == "" && db.SSLMode != "disable" {
		return errors.New("database password is required when SSL is enabled")
	}

	if db.Database == "" {
		return errors.New("database name is required")
	}

	validSSLModes := []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
	if !slices.Contains(validSSLModes, db.SSLMode) {
		return fmt.Errorf("invalid SSL mode: %s, must be one of: %s", db.SSLMode, strings.Join(validSSLModes, ", "))
	}

	if db.MaxConns <= 0 {
		return errors.New("database max connections must be positive")
	}

	if db.MinConns < 0 || db.MinConns > db.MaxConns {
		return errors.New("database min connections must be between 0 and max connections")
	}

	return nil
}

// validateServerConfig validates server configuration
func validateServerConfig(server *ServerConfig) error {
	if server.Port <= 0 || server.Port > 65535 {
		return errors.New("server port must be between 1 and 65535")
	}

	if server.ReadTimeout <= 0 {
		return errors.New("server read timeout must be positive")
	}

	if server.WriteTimeout <= 0 {
		return errors.New("server write timeout must be positive")
	}

	if server.IdleTimeout <= 0 {
		return errors.New("server idle timeout must be positive")
	}

	return nil
}

// validateLoggingConfig validates logging configuration
func validateLoggingConfig(logging *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, logging.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of: %s", logging.Level, strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "text"}
	if !slices.Contains(validFormats, logging.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of: %s", logging.Format, strings.Join(validFormats, ", "))
	}

	if logging.RetentionDays < 0 {
		return errors.New("log retention days must not be negative")
	}

	return nil
}

// validateApplicationConfig validates application configuration
func validateApplicationConfig(app *ApplicationConfig) error {
	validEnvironments := []string{"development", "staging", "production", "test"}
	if !slices.Contains(validEnvironments, app.Environment) {
		return fmt.Errorf("invalid environment: %s, must be one of: %s", app.Environment, strings.Join(validEnvironments, ", "))
	}

	if app.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	if app.RateLimitRequests <= 0 {
		return errors.New("rate limit requests must be positive")
	}

	if app.RateLimitWindow == "" {
		return errors.New("rate limit window is required")
	}

	if app.RateLimitPerSecond() <= 0 {
		return fmt.Errorf("invalid rate limit window: %s", app.RateLimitWindow)
	}

	if app.RateLimitBurst <= 0 {
		return errors.New("rate limit burst must be positive")
	}

	return nil
}
