package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chybatronik/goMetricsDashboard/internal/dashboard"
	"github.com/chybatronik/goMetricsDashboard/internal/middleware"
	pkgerrors "github.com/chybatronik/goMetricsDashboard/pkg/errors"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

var upstreamBodies = map[string]string{
	metricsapi.PathPairingIndex:        `{"pairing_index_percentage": 42.5, "total_analyzed_commits": 100, "paired_commits": 43}`,
	metricsapi.PathPipelinesSummary:    `{"total_runs": 5, "first_run": null, "last_run": null, "in_progress": 1, "queued": 0}`,
	metricsapi.PathPullRequestsSummary: `{"total": 3, "merged": 2, "closed": 0, "open": 1, "first_pr": null, "last_pr": null}`,
	metricsapi.PathConfiguration:       `{"result": {"git_provider": "github", "main_branch": "main"}}`,
}

// newTestRouter wires the real dashboard stack against a canned metrics API
func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := upstreamBodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)

	client, err := metricsapi.New(metricsapi.Config{BaseURL: upstream.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	logger := testLogger()
	service := dashboard.NewService(client, dashboard.Options{Logger: logger})

	health := NewHealthHandler("metrics-dashboard", "test", logger)
	health.AddChecker(dashboard.NewUpstreamHealthChecker(client, time.Second, logger))

	return NewRouter(RouterDeps{
		Logger:        logger,
		Health:        health,
		Dashboard:     NewDashboardHandler(logger, dashboard.NewLoader(service), nil, metricsapi.DateRange{}),
		Configuration: NewConfigurationHandler(logger, client),
		RateLimiter:   limiter,
	})
}

func TestRouter_DashboardSection(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doGet(t, router, "/api/v1/dashboard/insights?start_date=2024-01-01&end_date=2024-06-30", map[string]string{SessionHeader: "tab-1"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var body struct {
		Data dashboard.Insights `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 42.5, body.Data.PairingIndex.PairingIndexPercentage)
	assert.Equal(t, 5, body.Data.Pipelines.TotalRuns.Int())
	assert.Equal(t, 3, body.Data.PullRequests.Total.Int())
}

func TestRouter_UpstreamFailureIsSanitized(t *testing.T) {
	router := newTestRouter(t, nil)

	// pipelines needs endpoints the canned API does not serve
	w := doGet(t, router, "/api/v1/dashboard/pipelines", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, pkgerrors.ErrCodeUpstreamError, errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "/pipelines/")
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doGet(t, router, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp HealthCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Contains(t, resp.Checks, "metrics_api")
}

func TestRouter_Configuration(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doGet(t, router, "/api/v1/configuration", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp metricsapi.ConfigurationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "github", resp.Result.GitProvider)
	assert.Equal(t, "main", resp.Result.MainBranch)
}

func TestRouter_ErrorsAreJSON(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"unknown route", http.MethodGet, "/api/v1/nope", http.StatusNotFound, "NOT_FOUND"},
		{"wrong method", http.MethodPost, "/api/v1/dashboard/insights", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"unknown section", http.MethodGet, "/api/v1/dashboard/people", http.StatusNotFound, pkgerrors.ErrCodeSectionNotFound},
		{"presets disabled", http.MethodGet, "/api/v1/presets", http.StatusServiceUnavailable, pkgerrors.ErrCodePresetsDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestRouter_EchoesRequestID(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doGet(t, router, "/api/v1/nope", map[string]string{middleware.RequestIDHeader: "client-req-42"})

	assert.Equal(t, "client-req-42", w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_RateLimitsAPIButNotHealth(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1)
	t.Cleanup(limiter.Stop)
	router := newTestRouter(t, limiter)

	first := doGet(t, router, "/api/v1/dashboard/insights", nil)
	second := doGet(t, router, "/api/v1/dashboard/insights", nil)
	health := doGet(t, router, "/health?ping=true", nil)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", errorCode(t, second))
	assert.Equal(t, http.StatusOK, health.Code)
}
