package handlers

import (
	"context"
	"net/http"

	apperrors "github.com/chybatronik/goMetricsDashboard/internal/errors"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// ConfigurationSource fetches the metrics API configuration
type ConfigurationSource interface {
	Configuration(ctx context.Context) (metricsapi.Configuration, error)
}

// ConfigurationHandler proxies the metrics API configuration
type ConfigurationHandler struct {
	source ConfigurationSource
	logger *logging.Logger
}

// NewConfigurationHandler creates a ConfigurationHandler
func NewConfigurationHandler(logger *logging.Logger, source ConfigurationSource) *ConfigurationHandler {
	return &ConfigurationHandler{source: source, logger: logger}
}

// GetConfiguration handles GET /api/v1/configuration
func (h *ConfigurationHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.source.Configuration(r.Context())
	if err != nil {
		logger := h.logger.WithRequestID(extractRequestID(r))
		if metricsapi.IsCanceled(err) {
			logger.Debug("configuration fetch canceled by client")
		} else {
			logger.UpstreamError("configuration fetch failed", err)
		}
		writeError(w, r, apperrors.MapUpstreamErrorSecure(err))
		return
	}
	writeJSON(w, h.logger, http.StatusOK, metricsapi.ConfigurationResponse{Result: cfg})
}
