package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chybatronik/goMetricsDashboard/internal/dashboard"
	"github.com/chybatronik/goMetricsDashboard/internal/database"
	apperrors "github.com/chybatronik/goMetricsDashboard/internal/errors"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/models"
	"github.com/chybatronik/goMetricsDashboard/internal/validation"
	pkgerrors "github.com/chybatronik/goMetricsDashboard/pkg/errors"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// presetQueryParam names a saved filter on a dashboard request
const presetQueryParam = "preset"

// SectionLoader loads one dashboard section on behalf of a session
type SectionLoader interface {
	Load(ctx context.Context, session string, section dashboard.Section, r metricsapi.DateRange) (any, error)
}

// PresetLookup resolves a saved filter by name
type PresetLookup interface {
	GetPreset(ctx context.Context, name string) (*models.FilterPreset, error)
}

// SectionResponse is the body returned for a dashboard section
type SectionResponse struct {
	Section   dashboard.Section `json:"section"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Preset    string            `json:"preset,omitempty"`
	Data      any               `json:"data"`
}

// DashboardHandler serves the dashboard sections
type DashboardHandler struct {
	loader       SectionLoader
	presets      PresetLookup
	defaultRange metricsapi.DateRange
	logger       *logging.Logger
}

// NewDashboardHandler creates a dashboard handler. presets may be nil when
// the preset store is disabled.
func NewDashboardHandler(logger *logging.Logger, loader SectionLoader, presets PresetLookup, defaultRange metricsapi.DateRange) *DashboardHandler {
	return &DashboardHandler{
		loader:       loader,
		presets:      presets,
		defaultRange: defaultRange,
		logger:       logger,
	}
}

// GetSection handles GET /api/v1/dashboard/{section}
func (h *DashboardHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	logger := h.logger.WithRequestID(extractRequestID(r))

	section, err := dashboard.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		logger.Warn("unknown dashboard section", logging.FieldSection, chi.URLParam(r, "section"))
		writeError(w, r, apperrors.MapUpstreamErrorSecure(err))
		return
	}
	logger = logger.WithSection(section.String())

	session := r.Header.Get(SessionHeader)
	if err := validation.ValidateSessionKey(session); err != nil {
		logger.Warn("invalid session header", logging.FieldError, err)
		writeError(w, r, apperrors.MapUpstreamErrorSecure(err))
		return
	}

	rng, preset, err := h.resolveRange(r)
	if err != nil {
		logger.Warn("failed to resolve date range", logging.FieldError, err, "query", r.URL.RawQuery)
		writeError(w, r, err)
		return
	}

	data, err := h.loader.Load(r.Context(), session, section, rng)
	if err != nil {
		switch {
		case errors.Is(err, dashboard.ErrSuperseded):
			logger.Info("section load superseded", logging.FieldSession, session)
		case metricsapi.IsCanceled(err):
			logger.Debug("section load canceled by client", logging.FieldSession, session)
		default:
			logger.Error("section load failed",
				logging.FieldError, err,
				logging.FieldStartDate, rng.StartDate,
				logging.FieldEndDate, rng.EndDate,
			)
		}
		writeError(w, r, apperrors.MapUpstreamErrorSecure(err))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SectionResponse{
		Section:   section,
		StartDate: rng.StartDate,
		EndDate:   rng.EndDate,
		Preset:    preset,
		Data:      data,
	})

	logger.Debug("section served",
		logging.FieldStartDate, rng.StartDate,
		logging.FieldEndDate, rng.EndDate,
		logging.FieldPreset, preset,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)
}

// resolveRange picks the range for a request: a named preset wins, then
// explicit start_date/end_date keys, then the configured default. Returned
// errors are already client safe.
func (h *DashboardHandler) resolveRange(r *http.Request) (metricsapi.DateRange, string, error) {
	query := r.URL.Query()

	if query.Has(presetQueryParam) {
		name := validation.NormalizePresetName(query.Get(presetQueryParam))
		if err := validation.ValidatePresetName(name); err != nil {
			return metricsapi.DateRange{}, "", apperrors.MapUpstreamErrorSecure(err)
		}
		if h.presets == nil {
			return metricsapi.DateRange{}, "", pkgerrors.NewUnavailableError(pkgerrors.ErrCodePresetsDisabled, "Saved presets are not enabled")
		}
		preset, err := h.presets.GetPreset(r.Context(), name)
		if err != nil {
			return metricsapi.DateRange{}, "", mapPresetError(name, err)
		}
		return preset.Range(), preset.Name, nil
	}

	if query.Has(metricsapi.ParamStartDate) || query.Has(metricsapi.ParamEndDate) {
		rng := metricsapi.DateRange{
			StartDate: query.Get(metricsapi.ParamStartDate),
			EndDate:   query.Get(metricsapi.ParamEndDate),
		}
		if err := validation.ValidateDateRange(rng); err != nil {
			return metricsapi.DateRange{}, "", apperrors.MapUpstreamErrorSecure(err)
		}
		return rng, "", nil
	}

	return h.defaultRange, "", nil
}

// mapPresetError maps a preset store error for name to a client safe error
func mapPresetError(name string, err error) error {
	if errors.Is(err, database.ErrPresetNotFound) {
		return pkgerrors.NewPresetNotFoundError(name)
	}
	return database.MapStoreErrorSecure(err)
}
