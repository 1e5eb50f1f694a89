// Package config provides configuration types and structures for the goMetricsDashboard service.
package config

import "time"

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	MetricsAPI  MetricsAPIConfig  `yaml:"metrics_api"`
	Dashboard   DashboardConfig   `yaml:"dashboard"`
	Presets     PresetsConfig     `yaml:"presets"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	HealthCheck HealthCheckConfig `yaml:"health_check"`
	Application ApplicationConfig `yaml:"application"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int    `yaml:"port"`          // Server port number
	Host         string `yaml:"host"`          // Server host address
	ReadTimeout  int    `yaml:"read_timeout"`  // Read timeout in seconds
	WriteTimeout int    `yaml:"write_timeout"` // Write timeout in seconds
	IdleTimeout  int    `yaml:"idle_timeout"`  // Idle timeout in seconds
	Debug        bool   `yaml:"debug"`         // Enable debug mode
}

// MetricsAPIConfig holds the connection settings for the metrics API
type MetricsAPIConfig struct {
	BaseURL              string `yaml:"base_url"`               // Base URL, e.g. http://localhost:8000
	Token                string `yaml:"token"`                  // Optional bearer token
	Timeout              int    `yaml:"timeout"`                // Per-attempt timeout in seconds
	MaxRetries           int    `yaml:"max_retries"`            // Retries after the first attempt, 0 disables
	RetryInitialInterval int    `yaml:"retry_initial_interval"` // First backoff wait in milliseconds
}

// DashboardConfig holds dashboard section settings
type DashboardConfig struct {
	DefaultStartDate string `yaml:"default_start_date"` // Applied when a request names no range
	DefaultEndDate   string `yaml:"default_end_date"`   // Applied when a request names no range
	Top              int    `yaml:"top"`                // Result limit for churn, coupling and effort
	SectionTimeout   int    `yaml:"section_timeout"`    // Upper bound for one section load in seconds
}

// PresetsConfig holds saved filter settings
type PresetsConfig struct {
	Enabled       bool   `yaml:"enabled"`        // Persist presets in Postgres
	MigrationsDir string `yaml:"migrations_dir"` // Directory with .sql migrations
}

// DatabaseConfig holds database configuration, used only when presets are enabled
type DatabaseConfig struct {
	Host     string `yaml:"host"`      // Database host address
	Port     int    `yaml:"port"`      // Database port number
	User     string `yaml:"user"`      // Database username
	Password string `yaml:"password"`  // Database password
	Database string `yaml:"name"`      // Database name
	SSLMode  string `yaml:"ssl_mode"`  // SSL mode (disable, require, etc.)
	MaxConns int    `yaml:"max_conns"` // Maximum database connections
	MinConns int    `yaml:"min_conns"` // Minimum database connections
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level         string `yaml:"level"`          // Log level (debug, info, warn, error)
	Format        string `yaml:"format"`         // Log format (json, text)
	Dir           string `yaml:"dir"`            // Optional directory for log files
	RetentionDays int    `yaml:"retention_days"` // Log files older than this are removed at startup
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Enabled bool `yaml:"enabled"` // Enable health check endpoint
	Timeout int  `yaml:"timeout"` // Per-check timeout in seconds
}

// ApplicationConfig holds application-specific configuration
type ApplicationConfig struct {
	Environment       string `yaml:"environment"`         // Environment (development, staging, production, test)
	ShutdownTimeout   int    `yaml:"shutdown_timeout"`    // Shutdown timeout in seconds
	RateLimitRequests int    `yaml:"rate_limit_requests"` // Rate limit requests per window
	RateLimitWindow   string `yaml:"rate_limit_window"`   // Rate limit time window
	RateLimitBurst    int    `yaml:"rate_limit_burst"`    // Requests allowed above the steady rate
}

// TimeoutDuration returns the per-attempt timeout
func (c MetricsAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// RetryInitialDuration returns the first backoff wait
func (c MetricsAPIConfig) RetryInitialDuration() time.Duration {
	return time.Duration(c.RetryInitialInterval) * time.Millisecond
}

// SectionTimeoutDuration returns the upper bound for one section load
func (c DashboardConfig) SectionTimeoutDuration() time.Duration {
	return time.Duration(c.SectionTimeout) * time.Second
}

// RateLimitPerSecond converts the request window into a steady per-second rate
func (a ApplicationConfig) RateLimitPerSecond() float64 {
	window, err := time.ParseDuration(a.RateLimitWindow)
	if err != nil || window <= 0 || a.RateLimitRequests <= 0 {
		return 0
	}
	return float64(a.RateLimitRequests) / window.Seconds()
}
