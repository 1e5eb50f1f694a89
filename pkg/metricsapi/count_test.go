package metricsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Count
		wantErr bool
	}{
		{"integer", `7`, 7, false},
		{"integral float", `2.0`, 2, false},
		{"exponent", `1e3`, 1000, false},
		{"negative integral float", `-4.0`, -4, false},
		{"null keeps zero", `null`, 0, false},
		{"fraction", `2.5`, 0, true},
		{"string", `"2"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Count
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_FloatFormattedCounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathPullRequestsThroughTime:
			_, _ = w.Write([]byte(`[{"date": "2024-01-01", "open_prs": 2.0}]`))
		case PathPipelinesSummary:
			_, _ = w.Write([]byte(`{"total_runs": 5.0, "first_run": null, "last_run": null, "in_progress": 1.0, "queued": 0.0, "completed": 4.0}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	open, err := client.PullRequests().OpenThroughTime(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, []OpenThroughTime{{Date: "2024-01-01", OpenPRs: 2}}, open)

	summary, err := client.Pipelines().Summary(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalRuns.Int())
	require.NotNil(t, summary.Completed)
	assert.Equal(t, Count(4), *summary.Completed)
}
