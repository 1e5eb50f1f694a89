package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chybatronik/goMetricsDashboard/internal/database"
)

func TestPrintStatus(t *testing.T) {
	files := []database.Migration{
		{Version: "001_create_schema_migrations_table", Filename: "001_create_schema_migrations_table.sql"},
		{Version: "002_create_filter_presets", Filename: "002_create_filter_presets.sql"},
	}

	var out bytes.Buffer
	printStatus(&out, files, map[string]bool{"001_create_schema_migrations_table": true})

	assert.Contains(t, out.String(), "✓ 001_create_schema_migrations_table")
	assert.Contains(t, out.String(), "○ 002_create_filter_presets")
	assert.Contains(t, out.String(), "1 pending migration(s)")

	out.Reset()
	printStatus(&out, files, map[string]bool{
		"001_create_schema_migrations_table": true,
		"002_create_filter_presets":          true,
	})
	assert.Contains(t, out.String(), "All migrations are up to date!")
}

func TestRootCommand_DownRequiresTarget(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"down"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target")
}
