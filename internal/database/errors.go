package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	dberrors "github.com/chybatronik/goMetricsDashboard/pkg/errors"
)

// ErrPresetNotFound is returned when no preset has the requested name
var ErrPresetNotFound = errors.New("preset not found")

// Postgres error codes the preset store distinguishes
const (
	pgUniqueViolation    = "23505"
	pgNotNullViolation   = "23502"
	pgCheckViolation     = "23514"
	pgInvalidDatetime    = "22007"
	pgDatetimeOverflow   = "22008"
	pgStringTooLong      = "22001"
	pgClassConnection    = "08"
	pgClassResourceLimit = "53"
)

// MapStoreErrorSecure maps preset store errors to client safe errors.
// Constraint names, tables and values are logged, never returned.
func MapStoreErrorSecure(err error) error {
	if err == nil {
		return nil
	}
	if dberrors.IsDashboardError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		slog.Warn("preset store error",
			"code", pgErr.Code,
			"table", pgErr.TableName,
			"constraint", pgErr.ConstraintName,
			"message", pgErr.Message,
		)

		switch pgErr.Code {
		case pgUniqueViolation:
			return dberrors.NewConflictError(dberrors.ErrCodePresetExists, "A preset with this name already exists")
		case pgNotNullViolation, pgCheckViolation, pgInvalidDatetime, pgDatetimeOverflow, pgStringTooLong:
			return dberrors.NewValidationError(dberrors.ErrCodeInvalidPreset, "Preset failed validation")
		}
	}

	if isConnectionError(err) {
		slog.Error("preset store connection error", "error", err)
		return dberrors.NewUnavailableError(dberrors.ErrCodeServiceUnavailable, "Service temporarily unavailable")
	}

	slog.Error("preset store error", "error", err)
	return dberrors.NewStoreError("Preset store operation failed")
}

// isConnectionError checks if error is a connection-related error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgClassConnection) ||
			strings.HasPrefix(pgErr.Code, pgClassResourceLimit)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.Timeout(err)
}
