// Package config provides configuration loading and environment management
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML file
const ConfigFileEnv = "CONFIG_FILE"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s='%s': %s", e.Field, e.Value, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	msg := "configuration validation errors:\n"
	for _, err := range ve {
		msg += fmt.Sprintf("  - %s\n", err.Error())
	}
	return msg
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 60,
			IdleTimeout:  120,
		},
		MetricsAPI: MetricsAPIConfig{
			BaseURL:              "http://localhost:8000",
			Timeout:              30,
			MaxRetries:           0,
			RetryInitialInterval: 200,
		},
		Dashboard: DashboardConfig{
			Top:            20,
			SectionTimeout: 45,
		},
		Presets: PresetsConfig{
			Enabled:       false,
			MigrationsDir: "./migrations",
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "dashboard",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 1,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "json",
			RetentionDays: 7,
		},
		HealthCheck: HealthCheckConfig{
			Enabled: true,
			Timeout: 5,
		},
		Application: ApplicationConfig{
			Environment:       "development",
			ShutdownTimeout:   30,
			RateLimitRequests: 100,
			RateLimitWindow:   "1m",
			RateLimitBurst:    20,
		},
	}
}

// ValidatePort validates that a port number is in valid range
func ValidatePort(envVar string) error {
	portStr := os.Getenv(envVar)
	if portStr == "" {
		return nil // skip validation if not set
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ValidationError{
			Field:   envVar,
			Value:   portStr,
			Message: "must be a valid integer",
		}
	}

	if port < 1 || port > 65535 {
		return ValidationError{
			Field:   envVar,
			Value:   portStr,
			Message: "must be between 1 and 65535",
		}
	}

	return nil
}

// ValidateInt validates that an integer variable parses and is not negative
func ValidateInt(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return ValidationError{Field: envVar, Value: value, Message: "must be a valid integer"}
	}
	if n < 0 {
		return ValidationError{Field: envVar, Value: value, Message: "must not be negative"}
	}
	return nil
}

// ValidateBool validates that a boolean variable parses
func ValidateBool(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}
	if _, err := strconv.ParseBool(value); err != nil {
		return ValidationError{Field: envVar, Value: value, Message: "must be true or false"}
	}
	return nil
}

// ValidateLogLevel validates log level value
func ValidateLogLevel() error {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return nil
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[level] {
		return ValidationError{
			Field:   "LOG_LEVEL",
			Value:   level,
			Message: "must be one of: debug, info, warn, error",
		}
	}

	return nil
}

// ValidateEnvironmentType validates environment type
func ValidateEnvironmentType() error {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return nil
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}

	if !validEnvs[env] {
		return ValidationError{
			Field:   "ENVIRONMENT",
			Value:   env,
			Message: "must be one of: development, staging, production, test",
		}
	}

	return nil
}

// ValidateDate validates a YYYY-MM-DD date variable
func ValidateDate(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}
	if err := (metricsapi.DateRange{StartDate: value}).Validate(); err != nil {
		return ValidationError{Field: envVar, Value: value, Message: "must be a date in YYYY-MM-DD format"}
	}
	return nil
}

// ValidateAll checks the environment variables that must parse before loading
func ValidateAll() error {
	var errors ValidationErrors

	checks := []error{
		ValidatePort("APP_PORT"),
		ValidatePort("DB_PORT"),
		ValidateLogLevel(),
		ValidateEnvironmentType(),
		ValidateInt("METRICS_API_TIMEOUT"),
		ValidateInt("METRICS_API_MAX_RETRIES"),
		ValidateInt("DASHBOARD_TOP"),
		ValidateBool("PRESETS_ENABLED"),
		ValidateDate("DASHBOARD_START_DATE"),
		ValidateDate("DASHBOARD_END_DATE"),
	}
	for _, err := range checks {
		if validationErr, ok := err.(ValidationError); ok {
			errors = append(errors, validationErr)
		}
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables (including a .env file), in that order
func Load() (*Config, error) {
	// 1. Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	// 2. Pre-load environment variable validation
	if err := ValidateAll(); err != nil {
		return nil, fmt.Errorf("environment validation failed: %w", err)
	}

	config := Defaults()

	// 3. Optional config file
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := LoadFile(path, config); err != nil {
			return nil, err
		}
	}

	// 4. Environment overrides
	applyEnv(config)

	// 5. Post-load configuration validation
	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyEnv overrides config fields with any environment variables that are set
func applyEnv(c *Config) {
	c.Server.Port = getEnvInt("APP_PORT", c.Server.Port)
	c.Server.Host = getEnv("APP_HOST", c.Server.Host)
	c.Server.ReadTimeout = getEnvInt("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvInt("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvInt("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout)
	c.Server.Debug = getEnvBool("SERVER_DEBUG", c.Server.Debug)

	c.MetricsAPI.BaseURL = getEnv("METRICS_API_URL", c.MetricsAPI.BaseURL)
	c.MetricsAPI.Token = getEnv("METRICS_API_TOKEN", c.MetricsAPI.Token)
	c.MetricsAPI.Timeout = getEnvInt("METRICS_API_TIMEOUT", c.MetricsAPI.Timeout)
	c.MetricsAPI.MaxRetries = getEnvInt("METRICS_API_MAX_RETRIES", c.MetricsAPI.MaxRetries)
	c.MetricsAPI.RetryInitialInterval = getEnvInt("METRICS_API_RETRY_INTERVAL_MS", c.MetricsAPI.RetryInitialInterval)

	c.Dashboard.DefaultStartDate = getEnv("DASHBOARD_START_DATE", c.Dashboard.DefaultStartDate)
	c.Dashboard.DefaultEndDate = getEnv("DASHBOARD_END_DATE", c.Dashboard.DefaultEndDate)
	c.Dashboard.Top = getEnvInt("DASHBOARD_TOP", c.Dashboard.Top)
	c.Dashboard.SectionTimeout = getEnvInt("DASHBOARD_SECTION_TIMEOUT", c.Dashboard.SectionTimeout)

	c.Presets.Enabled = getEnvBool("PRESETS_ENABLED", c.Presets.Enabled)
	c.Presets.MigrationsDir = getEnv("MIGRATIONS_DIR", c.Presets.MigrationsDir)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Database = getEnv("DB_NAME", c.Database.Database)
	c.Database.SSLMode = getEnv("DB_SSL_MODE", c.Database.SSLMode)
	c.Database.MaxConns = getEnvInt("DB_MAX_CONNECTIONS", c.Database.MaxConns)
	c.Database.MinConns = getEnvInt("DB_MIN_CONNS", c.Database.MinConns)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)
	c.Logging.Dir = getEnv("LOG_DIR", c.Logging.Dir)
	c.Logging.RetentionDays = getEnvInt("LOG_RETENTION_DAYS", c.Logging.RetentionDays)

	c.HealthCheck.Enabled = getEnvBool("HEALTH_CHECK_ENABLED", c.HealthCheck.Enabled)
	c.HealthCheck.Timeout = getEnvInt("HEALTH_CHECK_TIMEOUT", c.HealthCheck.Timeout)

	c.Application.Environment = getEnv("ENVIRONMENT", c.Application.Environment)
	c.Application.ShutdownTimeout = getEnvInt("SHUTDOWN_TIMEOUT", c.Application.ShutdownTimeout)
	c.Application.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", c.Application.RateLimitRequests)
	c.Application.RateLimitWindow = getEnv("RATE_LIMIT_WINDOW", c.Application.RateLimitWindow)
	c.Application.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", c.Application.RateLimitBurst)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as integer with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets environment variable as boolean with default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
