package migration

import (
	"context"

	"datapreview/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles the catalog schema
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the schema version Run brings the database to
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all catalog migrations in order. Statements stick to the
// subset of SQL shared by PostgreSQL and SQLite.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createFilesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create files table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createFilesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS files (
			id VARCHAR(64) PRIMARY KEY,
			original_filename VARCHAR(255) NOT NULL,
			file_type VARCHAR(16) NOT NULL,
			uploaded_at TIMESTAMP NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			column_count INTEGER NOT NULL DEFAULT 0,
			processed BOOLEAN NOT NULL DEFAULT FALSE
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_files_uploaded_at ON files(uploaded_at DESC)`)
	return err
}
