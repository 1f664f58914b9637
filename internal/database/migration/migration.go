package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_generated_files",
		SQL: `CREATE TABLE IF NOT EXISTS generated_files (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename     TEXT        NOT NULL UNIQUE,
  format       TEXT        NOT NULL CHECK (format IN ('docx', 'tex')),
  storage_path TEXT        NOT NULL,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_generated_files_format",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_generated_files_format ON generated_files (format);`,
	},
	{
		Name: "create_index_generated_files_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_generated_files_created_at ON generated_files (created_at);`,
	},
}

// EnsureMigrated checks if the 'generated_files' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logger.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public.generated_files') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"reason", "schema already exists",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"steps", len(steps),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
