package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/chybatronik/goMetricsDashboard/pkg/errors"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

type stubConfigurationSource struct {
	cfg metricsapi.Configuration
	err error
}

func (s stubConfigurationSource) Configuration(ctx context.Context) (metricsapi.Configuration, error) {
	return s.cfg, s.err
}

func TestConfigurationHandler(t *testing.T) {
	source := stubConfigurationSource{cfg: metricsapi.Configuration{GitProvider: "github", MainBranch: "main", DashboardStartDate: "2024-01-01"}}
	h := NewConfigurationHandler(testLogger(), source)

	w := httptest.NewRecorder()
	h.GetConfiguration(w, httptest.NewRequest(http.MethodGet, "/api/v1/configuration", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp metricsapi.ConfigurationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, source.cfg, resp.Result)
}

func TestConfigurationHandler_UpstreamFailure(t *testing.T) {
	source := stubConfigurationSource{err: &metricsapi.TransportError{Path: metricsapi.PathConfiguration, Err: errors.New("dial tcp: connection refused")}}
	h := NewConfigurationHandler(testLogger(), source)

	w := httptest.NewRecorder()
	h.GetConfiguration(w, httptest.NewRequest(http.MethodGet, "/api/v1/configuration", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, pkgerrors.ErrCodeUpstreamUnavailable, errorCode(t, w))
}

func TestConfigurationHandler_ClientCanceled(t *testing.T) {
	source := stubConfigurationSource{err: &metricsapi.TransportError{Path: metricsapi.PathConfiguration, Err: context.Canceled}}
	h := NewConfigurationHandler(testLogger(), source)

	w := httptest.NewRecorder()
	h.GetConfiguration(w, httptest.NewRequest(http.MethodGet, "/api/v1/configuration", nil))

	assert.Equal(t, pkgerrors.StatusClientClosedRequest, w.Code)
	assert.Equal(t, pkgerrors.ErrCodeRequestCanceled, errorCode(t, w))
}
