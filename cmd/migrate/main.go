// Package main provides a CLI for manual database migration management.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chybatronik/goMetricsDashboard/internal/config"
	"github.com/chybatronik/goMetricsDashboard/internal/database"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		migrationsDir string
		timeout       time.Duration
	)

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the preset store schema",
		Long: `migrate applies and rolls back the SQL files in the migrations directory.
The database is configured with the same DB_* variables as the server.

Examples:
  migrate up
  migrate status
  migrate down --target 001_create_schema_migrations_table
  migrate rollback-last`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&migrationsDir, "dir", "./migrations", "Migrations directory path")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout")

	// withRunner connects, runs fn and closes the pool
	withRunner := func(fn func(ctx context.Context, runner *database.MigrationRunner, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			appConfig, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := logging.New(cmd.ErrOrStderr(), appConfig.Logging.Level, logging.FormatText, "migrate", "")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := database.NewConnectionPool(ctx, appConfig.Database)
			if err != nil {
				return err
			}
			defer pool.Close()
			logger.Store("Database connection established successfully", "dir", migrationsDir)

			return fn(ctx, database.NewMigrationRunner(pool, migrationsDir, logger), cmd.OutOrStdout())
		}
	}

	var target string
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration newer than --target",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(ctx context.Context, runner *database.MigrationRunner, out io.Writer) error {
			if err := runner.RunDownMigrations(ctx, target); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			fmt.Fprintf(out, "Rollback to version %s completed successfully\n", target)
			return nil
		}),
	}
	down.Flags().StringVar(&target, "target", "", "Version to keep (required)")
	_ = down.MarkFlagRequired("target")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Run pending migrations",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(ctx context.Context, runner *database.MigrationRunner, out io.Writer) error {
				if err := runner.RunMigrations(ctx); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintln(out, "Migrations completed successfully")
				return nil
			}),
		},
		down,
		&cobra.Command{
			Use:   "rollback-last",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(ctx context.Context, runner *database.MigrationRunner, out io.Writer) error {
				if err := runner.RollbackLastMigration(ctx); err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				fmt.Fprintln(out, "Last migration rolled back successfully")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List executed and pending migrations",
			Args:  cobra.NoArgs,
			RunE: withRunner(func(ctx context.Context, runner *database.MigrationRunner, out io.Writer) error {
				executed, err := runner.GetExecutedMigrations(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				files, err := runner.LoadMigrationFiles()
				if err != nil {
					return fmt.Errorf("failed to load migration files: %w", err)
				}
				printStatus(out, files, executed)
				return nil
			}),
		},
	)

	return root
}

// printStatus lists migrations in file order, marking the executed ones
func printStatus(out io.Writer, files []database.Migration, executed map[string]bool) {
	fmt.Fprintln(out, "Migration Status:")
	fmt.Fprintln(out, "================")

	pending := 0
	for _, m := range files {
		mark := "✓"
		if !executed[m.Version] {
			mark = "○"
			pending++
		}
		fmt.Fprintf(out, "  %s %s (%s)\n", mark, m.Version, m.Filename)
	}

	if pending == 0 {
		fmt.Fprintln(out, "\nAll migrations are up to date!")
	} else {
		fmt.Fprintf(out, "\n%d pending migration(s)\n", pending)
	}
	fmt.Fprintln(out, "================")
}
