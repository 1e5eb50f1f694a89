package dashboard

import (
	"context"
	"time"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/types"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// UpstreamHealthChecker reports whether the metrics API answers
type UpstreamHealthChecker struct {
	client  *metricsapi.Client
	timeout time.Duration
	logger  *logging.Logger
}

// NewUpstreamHealthChecker creates a checker that pings client within timeout
func NewUpstreamHealthChecker(client *metricsapi.Client, timeout time.Duration, logger *logging.Logger) *UpstreamHealthChecker {
	return &UpstreamHealthChecker{client: client, timeout: timeout, logger: logger}
}

// Name returns the checker name
func (c *UpstreamHealthChecker) Name() string {
	return "metrics_api"
}

// CheckHealth fetches the metrics API configuration
func (c *UpstreamHealthChecker) CheckHealth(ctx context.Context) types.HealthCheck {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.client.Ping(ctx)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		if c.logger != nil {
			c.logger.HealthCheck("metrics API unreachable",
				logging.FieldCheckName, c.Name(),
				logging.FieldError, err.Error(),
			)
		}
		return types.HealthCheck{
			Status:         types.StatusUnhealthy,
			ResponseTimeMs: elapsed,
			Error:          "metrics API unreachable",
		}
	}

	return types.HealthCheck{
		Status:         types.StatusHealthy,
		ResponseTimeMs: elapsed,
	}
}
