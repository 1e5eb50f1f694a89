// Package models holds the records persisted by the preset store
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// FilterPreset is a named date range saved from the dashboard filter bar
type FilterPreset struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	StartDate string    `json:"start_date" db:"start_date"`
	EndDate   string    `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Range returns the preset as a metrics API date range
func (p FilterPreset) Range() metricsapi.DateRange {
	return metricsapi.DateRange{StartDate: p.StartDate, EndDate: p.EndDate}
}

// CreatePresetRequest is the body accepted when saving a preset
type CreatePresetRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Range returns the requested date range
func (r CreatePresetRequest) Range() metricsapi.DateRange {
	return metricsapi.DateRange{StartDate: r.StartDate, EndDate: r.EndDate}
}

// PresetList is one page of saved presets
type PresetList struct {
	Presets []FilterPreset `json:"presets"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}
