package metricsapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(maxRetries int) func(*Config) {
	return func(c *Config) {
		c.Retry = RetryPolicy{
			MaxRetries:      maxRetries,
			InitialInterval: time.Millisecond,
			MaxInterval:     2 * time.Millisecond,
		}
	}
}

func TestRetry_ServerErrorsAreRetriedUpToTheBound(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, fastRetry(2))

	_, err := client.Pipelines().RunsBy(context.Background(), DateRange{})

	require.Error(t, err)
	assert.True(t, IsAPIError(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetry_SucceedsAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"period": "2024-01", "workflow": "CI", "runs": 7}]`))
	}, fastRetry(3))

	got, err := client.Pipelines().RunsBy(context.Background(), DateRange{})

	require.NoError(t, err)
	assert.Equal(t, []RunsBy{{Period: "2024-01", Workflow: "CI", Runs: 7}}, got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetry_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}, fastRetry(3))

	_, err := client.SourceCode().EntityOwnership(context.Background(), DateRange{})

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetry_DecodeErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`not json`))
	}, fastRetry(3))

	_, err := client.SourceCode().EntityOwnership(context.Background(), DateRange{})

	assert.True(t, IsDecodeError(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryPolicy_Attempts(t *testing.T) {
	assert.Equal(t, 1, RetryPolicy{}.Attempts())
	assert.Equal(t, 4, RetryPolicy{MaxRetries: 3}.Attempts())
	assert.Equal(t, 1, RetryPolicy{MaxRetries: -2}.Attempts())
}
