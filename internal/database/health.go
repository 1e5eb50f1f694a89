package database

import (
	"context"
	"time"

	"github.com/chybatronik/goMetricsDashboard/internal/types"
)

// Pinger is the part of a connection pool the health checker needs
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports preset store connectivity
type HealthChecker struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthChecker creates a new database health checker
func NewHealthChecker(db Pinger, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthChecker{db: db, timeout: timeout}
}

// Name implements types.HealthChecker
func (h *HealthChecker) Name() string {
	return "database"
}

// CheckHealth checks database connectivity with timing
func (h *HealthChecker) CheckHealth(ctx context.Context) types.HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)

	check := types.HealthCheck{
		Status:         types.StatusHealthy,
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		check.Status = types.StatusUnhealthy
		check.Error = "database connection failed"
	}
	return check
}
