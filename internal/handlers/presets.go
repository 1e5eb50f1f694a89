package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chybatronik/goMetricsDashboard/internal/database"
	apperrors "github.com/chybatronik/goMetricsDashboard/internal/errors"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/models"
	"github.com/chybatronik/goMetricsDashboard/internal/types"
	"github.com/chybatronik/goMetricsDashboard/internal/validation"
	pkgerrors "github.com/chybatronik/goMetricsDashboard/pkg/errors"
)

// PresetService defines the preset store operations used by the handlers
type PresetService interface {
	PresetLookup
	CreatePreset(ctx context.Context, req models.CreatePresetRequest) (*models.FilterPreset, error)
	ListPresets(ctx context.Context, params types.ListPresetsParams) ([]models.FilterPreset, int, error)
	DeletePreset(ctx context.Context, name string) error
}

// PresetHandler handles HTTP requests for saved filters
type PresetHandler struct {
	service PresetService
	logger  *logging.Logger
}

// NewPresetHandler creates a PresetHandler. A nil service answers every
// request with PRESETS_DISABLED.
func NewPresetHandler(logger *logging.Logger, service PresetService) *PresetHandler {
	return &PresetHandler{
		service: service,
		logger:  logger,
	}
}

// enabled writes PRESETS_DISABLED and reports false when there is no store
func (h *PresetHandler) enabled(w http.ResponseWriter, r *http.Request) bool {
	if h.service != nil {
		return true
	}
	writeError(w, r, pkgerrors.NewUnavailableError(pkgerrors.ErrCodePresetsDisabled, "Saved presets are not enabled"))
	return false
}

// validateContentType validates that the request has application/json content type
func validateContentType(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return pkgerrors.NewValidationError(pkgerrors.ErrCodeInvalidContent, "Content-Type header is required")
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return pkgerrors.NewValidationError(pkgerrors.ErrCodeInvalidContent, "Invalid Content-Type header format")
	}
	if mediaType != "application/json" {
		return pkgerrors.NewValidationError(pkgerrors.ErrCodeInvalidContent, "Content-Type must be application/json")
	}
	return nil
}

// parseCreateRequest reads and validates a CreatePresetRequest body
func parseCreateRequest(r *http.Request) (models.CreatePresetRequest, error) {
	var req models.CreatePresetRequest
	if r.Body == nil {
		return req, pkgerrors.NewValidationError(pkgerrors.ErrCodeEmptyBody, "Request body cannot be empty")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, validation.MaxPresetBodyBytes+1))
	if err != nil {
		return req, pkgerrors.NewValidationError(pkgerrors.ErrCodeEmptyBody, "Failed to read request body")
	}
	if len(body) == 0 {
		return req, pkgerrors.NewValidationError(pkgerrors.ErrCodeEmptyBody, "Request body cannot be empty")
	}
	if err := validation.ValidatePayloadSize(body, validation.MaxPresetBodyBytes); err != nil {
		return req, pkgerrors.NewValidationError(pkgerrors.ErrCodePayloadTooLarge, "Request body is too large")
	}

	if err := json.Unmarshal(body, &req); err != nil {
		return req, pkgerrors.NewValidationError(pkgerrors.ErrCodeInvalidJSON, "Invalid JSON format")
	}

	req.Name = validation.NormalizePresetName(req.Name)
	if err := validation.ValidatePresetName(req.Name); err != nil {
		return req, apperrors.MapUpstreamErrorSecure(err)
	}
	if err := validation.ValidateDateRange(req.Range()); err != nil {
		return req, apperrors.MapUpstreamErrorSecure(err)
	}
	return req, nil
}

// parseListParams reads limit and offset query parameters
func parseListParams(r *http.Request) (types.ListPresetsParams, error) {
	var params types.ListPresetsParams
	for _, p := range []struct {
		key string
		dst *int
	}{{"limit", &params.Limit}, {"offset", &params.Offset}} {
		raw := r.URL.Query().Get(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return params, pkgerrors.MapValidationError(p.key, validation.ReasonFormat)
		}
		*p.dst = n
	}
	return params.Normalize(), nil
}

// presetName reads the {name} path parameter
func presetName(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	name = validation.NormalizePresetName(name)
	if err := validation.ValidatePresetName(name); err != nil {
		return "", apperrors.MapUpstreamErrorSecure(err)
	}
	return name, nil
}

// CreatePreset handles POST /api/v1/presets
func (h *PresetHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w, r) {
		return
	}
	logger := h.logger.WithRequestID(extractRequestID(r))

	if err := validateContentType(r); err != nil {
		logger.Warn("invalid Content-Type header", "content_type", r.Header.Get("Content-Type"))
		writeError(w, r, err)
		return
	}

	req, err := parseCreateRequest(r)
	if err != nil {
		logger.Warn("invalid preset request", logging.FieldError, err)
		writeError(w, r, err)
		return
	}

	preset, err := h.service.CreatePreset(r.Context(), req)
	if err != nil {
		logger.StoreError("failed to create preset", err)
		writeError(w, r, mapPresetError(req.Name, err))
		return
	}

	logger.Store("preset created", logging.FieldPreset, preset.Name, "id", preset.ID.String())
	writeJSON(w, h.logger, http.StatusCreated, preset)
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w, r) {
		return
	}
	logger := h.logger.WithRequestID(extractRequestID(r))

	params, err := parseListParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	presets, total, err := h.service.ListPresets(r.Context(), params)
	if err != nil {
		logger.StoreError("failed to list presets", err)
		writeError(w, r, mapPresetError("", err))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, models.PresetList{
		Presets: presets,
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
	})
}

// GetPreset handles GET /api/v1/presets/{name}
func (h *PresetHandler) GetPreset(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w, r) {
		return
	}

	name, err := presetName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	preset, err := h.service.GetPreset(r.Context(), name)
	if err != nil {
		if !errors.Is(err, database.ErrPresetNotFound) {
			h.logger.WithRequestID(extractRequestID(r)).StoreError("failed to get preset", err)
		}
		writeError(w, r, mapPresetError(name, err))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, preset)
}

// DeletePreset handles DELETE /api/v1/presets/{name}
func (h *PresetHandler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	if !h.enabled(w, r) {
		return
	}
	logger := h.logger.WithRequestID(extractRequestID(r))

	name, err := presetName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeletePreset(r.Context(), name); err != nil {
		writeError(w, r, mapPresetError(name, err))
		return
	}

	logger.Store("preset deleted", logging.FieldPreset, name)
	w.WriteHeader(http.StatusNoContent)
}
