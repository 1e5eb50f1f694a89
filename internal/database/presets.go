package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/models"
	"github.com/chybatronik/goMetricsDashboard/internal/types"
)

const (
	// DefaultOperationTimeout bounds every preset store query
	DefaultOperationTimeout = 5 * time.Second
	// SlowQueryThreshold is the latency above which a query is logged
	SlowQueryThreshold = 100 * time.Millisecond
)

// presetColumns renders DATE columns as YYYY-MM-DD with '' for unbounded ends
const presetColumns = `id, name,
	COALESCE(to_char(start_date, 'YYYY-MM-DD'), '') AS start_date,
	COALESCE(to_char(end_date, 'YYYY-MM-DD'), '') AS end_date,
	created_at, updated_at`

// PresetStore persists saved dashboard filters in Postgres
type PresetStore struct {
	pool   *pgxpool.Pool
	logger *logging.Logger
}

// NewPresetStore creates a preset store on pool. A nil logger discards output.
func NewPresetStore(pool *pgxpool.Pool, logger *logging.Logger) *PresetStore {
	if logger == nil {
		logger = logging.New(io.Discard, "error", "text", "presets", "")
	}
	return &PresetStore{pool: pool, logger: logger}
}

// CreatePreset saves a new preset. The caller validates the request; the
// table constraints reject duplicate names and reversed ranges.
func (s *PresetStore) CreatePreset(ctx context.Context, req models.CreatePresetRequest) (*models.FilterPreset, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()
	defer s.observe("CreatePreset", time.Now())

	query := `INSERT INTO filter_presets (id, name, start_date, end_date)
		VALUES ($1, $2, NULLIF($3, '')::date, NULLIF($4, '')::date)
		RETURNING ` + presetColumns

	rows, err := s.pool.Query(ctx, query, uuid.New(), req.Name, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create preset: %w", err)
	}
	preset, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.FilterPreset])
	if err != nil {
		return nil, fmt.Errorf("failed to create preset: %w", err)
	}
	return preset, nil
}

// GetPreset loads a preset by name. Missing names wrap ErrPresetNotFound.
func (s *PresetStore) GetPreset(ctx context.Context, name string) (*models.FilterPreset, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()
	defer s.observe("GetPreset", time.Now())

	rows, err := s.pool.Query(ctx, `SELECT `+presetColumns+` FROM filter_presets WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	preset, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.FilterPreset])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset: %w", err)
	}
	return preset, nil
}

// ListPresets returns one page of presets, newest first, and the total count
func (s *PresetStore) ListPresets(ctx context.Context, params types.ListPresetsParams) ([]models.FilterPreset, int, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()
	defer s.observe("ListPresets", time.Now())

	params = params.Normalize()

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM filter_presets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count presets: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+presetColumns+` FROM filter_presets ORDER BY created_at DESC, name LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list presets: %w", err)
	}
	presets, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FilterPreset])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan presets: %w", err)
	}
	if presets == nil {
		presets = []models.FilterPreset{}
	}
	return presets, total, nil
}

// DeletePreset removes a preset by name. Missing names wrap ErrPresetNotFound.
func (s *PresetStore) DeletePreset(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultOperationTimeout)
	defer cancel()
	defer s.observe("DeletePreset", time.Now())

	tag, err := s.pool.Exec(ctx, `DELETE FROM filter_presets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return nil
}

func (s *PresetStore) observe(op string, start time.Time) {
	if d := time.Since(start); d > SlowQueryThreshold {
		s.logger.Store("slow query", "operation", op, "duration_ms", d.Milliseconds())
	}
}
