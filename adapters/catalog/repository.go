package catalog

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log"

	"datapreview/domain/dataset"
	"datapreview/internal/config"
	"datapreview/internal/errors"
	"datapreview/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Repository is the file catalog the index page lists
type Repository interface {
	List(ctx context.Context) ([]dataset.File, error)
	Get(ctx context.Context, id string) (*dataset.File, error)
	Save(ctx context.Context, f *dataset.File) error
	Delete(ctx context.Context, id string) error
}

// Open connects to the catalog database and applies migrations
func Open(ctx context.Context, cfg config.CatalogConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.Driver(), cfg.DatabaseURL)
	if err != nil {
		return nil, errors.DatabaseError("failed to open catalog database", err)
	}
	if cfg.Driver() == "sqlite" {
		// one writer; modernc serializes anyway and this avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to ping catalog database", err)
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "catalog migration failed")
	}

	log.Printf("[Catalog] Connected using %s driver, schema %s", cfg.Driver(), runner.Version())
	return db, nil
}

// fileRepository implements Repository on sqlx
type fileRepository struct {
	db *sqlx.DB
}

// NewRepository creates a catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &fileRepository{db: db}
}

const fileColumns = `id, original_filename, file_type, uploaded_at, row_count, column_count, processed`

// List returns every file, newest upload first
func (r *fileRepository) List(ctx context.Context) ([]dataset.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files ORDER BY uploaded_at DESC, id`

	var files []dataset.File
	if err := r.db.SelectContext(ctx, &files, query); err != nil {
		return nil, errors.DatabaseError("failed to list files", err)
	}
	return files, nil
}

// Get retrieves a file by id
func (r *fileRepository) Get(ctx context.Context, id string) (*dataset.File, error) {
	query := r.db.Rebind(`SELECT ` + fileColumns + ` FROM files WHERE id = ?`)

	var f dataset.File
	if err := r.db.GetContext(ctx, &f, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("file " + id)
		}
		return nil, errors.DatabaseError("failed to get file", err)
	}
	return &f, nil
}

// Save inserts the file or updates the row with the same id
func (r *fileRepository) Save(ctx context.Context, f *dataset.File) error {
	if f.ID == "" {
		return errors.InvalidInput("file id is required")
	}
	if f.OriginalFilename == "" {
		return errors.InvalidInput("original filename is required")
	}

	query := `INSERT INTO files (` + fileColumns + `)
		VALUES (:id, :original_filename, :file_type, :uploaded_at, :row_count, :column_count, :processed)
		ON CONFLICT (id) DO UPDATE SET
			original_filename = excluded.original_filename,
			file_type = excluded.file_type,
			uploaded_at = excluded.uploaded_at,
			row_count = excluded.row_count,
			column_count = excluded.column_count,
			processed = excluded.processed`

	stored := *f
	stored.UploadedAt = stored.UploadedAt.UTC()
	if _, err := r.db.NamedExecContext(ctx, query, stored); err != nil {
		return errors.DatabaseError("failed to save file", err)
	}
	return nil
}

// Delete removes the file entry
func (r *fileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM files WHERE id = ?`), id)
	if err != nil {
		return errors.DatabaseError("failed to delete file", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("file " + id)
	}
	return nil
}
