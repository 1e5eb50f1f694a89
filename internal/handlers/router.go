package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/chybatronik/goMetricsDashboard/internal/errors"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/middleware"
)

// RouterDeps collects what the router serves. Presets may be nil.
type RouterDeps struct {
	Logger        *logging.Logger
	Health        *HealthHandler
	Dashboard     *DashboardHandler
	Configuration *ConfigurationHandler
	Presets       *PresetHandler
	RateLimiter   *middleware.RateLimiter
}

// NewRouter wires the HTTP API
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteNotFoundError(w, r, "")
	})
	r.MethodNotAllowed(apperrors.WriteMethodNotAllowedError)

	r.Method(http.MethodGet, "/health", deps.Health)

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware)
		}

		r.Get("/dashboard/{section}", deps.Dashboard.GetSection)
		r.Get("/configuration", deps.Configuration.GetConfiguration)

		presets := deps.Presets
		if presets == nil {
			presets = NewPresetHandler(deps.Logger, nil)
		}
		r.Route("/presets", func(r chi.Router) {
			r.Get("/", presets.ListPresets)
			r.Post("/", presets.CreatePreset)
			r.Get("/{name}", presets.GetPreset)
			r.Delete("/{name}", presets.DeletePreset)
		})
	})

	return r
}
