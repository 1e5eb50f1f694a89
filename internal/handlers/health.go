package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/types"
)

// HealthCheckResponse represents the structured health check response format
type HealthCheckResponse struct {
	Status        string                       `json:"status"` // healthy|degraded|unhealthy
	Timestamp     int64                        `json:"timestamp"`
	Service       string                       `json:"service"`
	Version       string                       `json:"version"`
	UptimeSeconds int64                        `json:"uptime_seconds"`
	Checks        map[string]types.HealthCheck `json:"checks"`
}

// HealthHandler aggregates dependency checks
type HealthHandler struct {
	checkers  []types.HealthChecker
	optional  map[string]bool
	startTime time.Time
	version   string
	service   string
	mu        sync.RWMutex
	logger    *logging.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, version string, logger *logging.Logger) *HealthHandler {
	return &HealthHandler{
		checkers:  make([]types.HealthChecker, 0),
		optional:  make(map[string]bool),
		startTime: time.Now(),
		version:   version,
		service:   service,
		logger:    logger,
	}
}

// AddChecker adds a check whose failure makes the service unhealthy
func (h *HealthHandler) AddChecker(checker types.HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

// AddOptionalChecker adds a check whose failure only degrades the service.
// The dashboard still serves sections while the preset store is down.
func (h *HealthHandler) AddOptionalChecker(checker types.HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
	h.optional[checker.Name()] = true
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.URL.Query().Get("ping") == "true" {
		writeJSON(w, h.logger, http.StatusOK, map[string]string{
			"status": "ok",
			"ping":   "pong",
		})
		return
	}

	h.mu.RLock()
	checkers := make([]types.HealthChecker, len(h.checkers))
	copy(checkers, h.checkers)
	optional := make(map[string]bool, len(h.optional))
	for name := range h.optional {
		optional[name] = true
	}
	h.mu.RUnlock()

	response := HealthCheckResponse{
		Status:        types.StatusHealthy,
		Timestamp:     time.Now().Unix(),
		Service:       h.service,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        make(map[string]types.HealthCheck, len(checkers)),
	}

	results := make([]types.HealthCheck, len(checkers))
	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Add(1)
		go func(i int, checker types.HealthChecker) {
			defer wg.Done()
			results[i] = checker.CheckHealth(r.Context())
		}(i, checker)
	}
	wg.Wait()

	for i, checker := range checkers {
		check := results[i]
		response.Checks[checker.Name()] = check
		if check.Status == types.StatusHealthy {
			continue
		}

		h.logger.HealthCheck("health check failed",
			logging.FieldCheckName, checker.Name(),
			logging.FieldCheckStatus, check.Status,
			logging.FieldError, check.Error,
		)
		switch {
		case !optional[checker.Name()]:
			response.Status = types.StatusUnhealthy
		case response.Status == types.StatusHealthy:
			response.Status = types.StatusDegraded
		}
	}

	status := http.StatusOK
	if response.Status == types.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	h.logger.HealthCheck("health check completed",
		logging.FieldCheckStatus, response.Status,
		logging.FieldResponseTime, time.Since(start).Milliseconds(),
	)
	writeJSON(w, h.logger, status, response)
}
