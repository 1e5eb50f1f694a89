// Package types provides types shared between the server packages
package types

import "context"

// Health check statuses
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
)

// HealthCheck represents the result of one dependency check
type HealthCheck struct {
	Status         string            `json:"status"`
	ResponseTimeMs int64             `json:"response_time_ms"`
	Error          string            `json:"error,omitempty"`
	Details        map[string]string `json:"details,omitempty"`
}

// HealthChecker defines the interface for health check implementations
type HealthChecker interface {
	Name() string
	CheckHealth(ctx context.Context) HealthCheck
}
