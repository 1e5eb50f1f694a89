package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
)

const legacyChecksum = "legacy_migration_no_checksum_available"

// Migration represents a database migration
type Migration struct {
	Version    string
	Filename   string
	SQLContent string
	Checksum   string
}

// DownFilename returns the rollback file paired with the migration.
// 002_create_filter_presets pairs with 002_down_create_filter_presets.sql.
func (m Migration) DownFilename() string {
	return downFilename(m.Version)
}

func downFilename(version string) string {
	prefix, rest, ok := strings.Cut(version, "_")
	if !ok {
		return version + "_down.sql"
	}
	return prefix + "_down_" + rest + ".sql"
}

// calculateChecksum computes SHA256 checksum of migration content
func calculateChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// MigrationRunner executes database migrations
type MigrationRunner struct {
	db     *pgxpool.Pool
	dir    string
	logger *logging.Logger
}

// NewMigrationRunner creates a new migration runner. A nil logger discards output.
func NewMigrationRunner(db *pgxpool.Pool, migrationsDir string, logger *logging.Logger) *MigrationRunner {
	if logger == nil {
		logger = logging.New(io.Discard, "error", "text", "migrate", "")
	}
	return &MigrationRunner{
		db:     db,
		dir:    migrationsDir,
		logger: logger,
	}
}

// RunMigrations executes all pending migrations in order
func (m *MigrationRunner) RunMigrations(ctx context.Context) error {
	m.logger.Store("starting migrations", "dir", m.dir)
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		m.logger.StoreError("failed to create migrations table", err)
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := m.loadMigrationFiles()
	if err != nil {
		m.logger.StoreError("failed to load migration files", err)
		return fmt.Errorf("failed to load migration files: %w", err)
	}

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		m.logger.StoreError("failed to get executed migrations", err)
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}
	m.logger.Store("migration state", "files", len(migrations), "executed", len(executed))

	pendingCount := 0
	for _, migration := range migrations {
		if executed[migration.Version] {
			continue
		}
		pendingCount++
		m.logger.Store("executing migration", "version", migration.Version, "checksum", migration.Checksum[:16])

		if err := m.executeMigration(ctx, migration); err != nil {
			m.logger.StoreError("failed to execute migration "+migration.Version, err)
			return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
		}
	}

	if err := m.verifyMigrationIntegrity(ctx, migrations); err != nil {
		m.logger.StoreError("migration integrity verification failed", err)
		return fmt.Errorf("migration integrity verification failed: %w", err)
	}

	m.logger.Store("migrations completed", "executed", pendingCount, "duration", time.Since(startTime).String())
	return nil
}

// createMigrationsTable creates the table to track migration execution
func (m *MigrationRunner) createMigrationsTable(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			checksum VARCHAR(64)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_schema_migrations_executed_at
		ON schema_migrations(executed_at)`,
		`ALTER TABLE schema_migrations
		ADD COLUMN IF NOT EXISTS checksum VARCHAR(64)`,
		`UPDATE schema_migrations
		SET checksum = '` + legacyChecksum + `'
		WHERE checksum IS NULL`,
	}
	for _, stmt := range statements {
		if _, err := m.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadMigrationFiles loads up migrations from the migrations directory
func (m *MigrationRunner) LoadMigrationFiles() ([]Migration, error) {
	return m.loadMigrationFiles()
}

func (m *MigrationRunner) loadMigrationFiles() ([]Migration, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(filename, ".sql") {
			continue
		}
		// down files are only read on rollback
		if strings.Contains(filename, "_down_") || strings.HasSuffix(filename, "_down.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		contentStr := string(content)
		migrations = append(migrations, Migration{
			Version:    strings.TrimSuffix(filename, ".sql"),
			Filename:   filename,
			SQLContent: contentStr,
			Checksum:   calculateChecksum(contentStr),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// GetExecutedMigrations retrieves the set of executed migration versions
func (m *MigrationRunner) GetExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	return m.getExecutedMigrations(ctx)
}

func (m *MigrationRunner) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	executed := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		executed[version] = true
	}

	return executed, rows.Err()
}

// executeMigration executes a single migration
func (m *MigrationRunner) executeMigration(ctx context.Context, migration Migration) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, migration.SQLContent); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)",
		migration.Version, migration.Checksum); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit(ctx)
}

// verifyMigrationIntegrity verifies that executed migrations match their checksums
func (m *MigrationRunner) verifyMigrationIntegrity(ctx context.Context, migrations []Migration) error {
	rows, err := m.db.Query(ctx, "SELECT version, checksum FROM schema_migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query executed migrations: %w", err)
	}
	defer rows.Close()

	recorded := make(map[string]string)
	for rows.Next() {
		var version, checksum string
		if err := rows.Scan(&version, &checksum); err != nil {
			return fmt.Errorf("failed to scan executed migration: %w", err)
		}
		recorded[version] = checksum
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating executed migrations: %w", err)
	}

	return checkIntegrity(recorded, migrations)
}

// checkIntegrity compares recorded checksums against the files on disk
func checkIntegrity(recorded map[string]string, migrations []Migration) error {
	current := make(map[string]string, len(migrations))
	for _, mig := range migrations {
		current[mig.Version] = mig.Checksum
	}

	versions := make([]string, 0, len(recorded))
	for v := range recorded {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	for _, version := range versions {
		checksum, ok := current[version]
		if !ok {
			return fmt.Errorf("migration %s found in database but not in migrations directory", version)
		}
		if recorded[version] == legacyChecksum {
			continue
		}
		if recorded[version] != checksum {
			return fmt.Errorf("migration %s has been modified after execution (checksum mismatch)", version)
		}
	}
	return nil
}

// RollbackLastMigration rolls back the last executed migration
func (m *MigrationRunner) RollbackLastMigration(ctx context.Context) error {
	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	if len(executed) == 0 {
		m.logger.Store("no migrations to roll back")
		return nil
	}

	var last string
	for version := range executed {
		if version > last {
			last = version
		}
	}

	return m.rollback(ctx, last)
}

// RunDownMigrations rolls back every executed migration newer than targetVersion
func (m *MigrationRunner) RunDownMigrations(ctx context.Context, targetVersion string) error {
	m.logger.Store("rolling back", "target", targetVersion)
	startTime := time.Now()

	executed, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrations, err := m.loadMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to load migration files: %w", err)
	}

	rollbackCount := 0
	for i := len(migrations) - 1; i >= 0; i-- {
		version := migrations[i].Version
		if !executed[version] || version <= targetVersion {
			continue
		}
		if err := m.rollback(ctx, version); err != nil {
			return err
		}
		rollbackCount++
	}

	m.logger.Store("rollback completed", "rolled_back", rollbackCount, "target", targetVersion, "duration", time.Since(startTime).String())
	return nil
}

// rollback applies the down file for version and forgets it, in one transaction
func (m *MigrationRunner) rollback(ctx context.Context, version string) error {
	filename := downFilename(version)
	content, err := os.ReadFile(filepath.Join(m.dir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no rollback file %s for migration %s", filename, version)
	}
	if err != nil {
		return fmt.Errorf("failed to read rollback file %s: %w", filename, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		m.logger.StoreError("failed to execute rollback "+version, err)
		return fmt.Errorf("failed to execute rollback SQL for %s: %w", version, err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM schema_migrations WHERE version = $1", version); err != nil {
		return fmt.Errorf("failed to remove migration %s from tracking: %w", version, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rollback of %s: %w", version, err)
	}

	m.logger.Store("migration rolled back", "version", version)
	return nil
}
