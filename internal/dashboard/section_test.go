package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		in   string
		want Section
	}{
		{"insights", SectionInsights},
		{"Pipelines", SectionPipelines},
		{" source-code ", SectionSourceCode},
		{"pull-requests", SectionPullRequests},
	}
	for _, tt := range tests {
		got, err := ParseSection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSection("deployments")
	var unknown *UnknownSectionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "deployments", unknown.Name)
}

func TestSections_ReturnsCopy(t *testing.T) {
	all := Sections()
	require.Len(t, all, 4)
	all[0] = "mutated"
	assert.Equal(t, SectionInsights, Sections()[0])
}
