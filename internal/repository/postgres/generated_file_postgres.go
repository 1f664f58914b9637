package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/model"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/repository"
)

// GeneratedFilePostgres is a PostgreSQL implementation of repository.GeneratedFileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type GeneratedFilePostgres struct {
	db *sql.DB
}

// NewGeneratedFilePostgres creates a new GeneratedFilePostgres repository.
func NewGeneratedFilePostgres(db *sql.DB) *GeneratedFilePostgres {
	return &GeneratedFilePostgres{db: db}
}

var _ repository.GeneratedFileRepository = (*GeneratedFilePostgres)(nil)

const columns = `id, filename, format, storage_path, size, content_type, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*model.GeneratedFile, error) {
	var f model.GeneratedFile
	if err := row.Scan(
		&f.ID,
		&f.Filename,
		&f.Format,
		&f.StoragePath,
		&f.Size,
		&f.ContentType,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create upserts a manifest row; a same-name regeneration replaces the previous row's metadata.
func (r *GeneratedFilePostgres) Create(ctx context.Context, f *model.GeneratedFile) (*model.GeneratedFile, error) {
	const q = `
		INSERT INTO generated_files (id, filename, format, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (filename) DO UPDATE SET
			format = EXCLUDED.format,
			storage_path = EXCLUDED.storage_path,
			size = EXCLUDED.size,
			content_type = EXCLUDED.content_type,
			created_at = EXCLUDED.created_at
		RETURNING ` + columns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.Filename,
		string(f.Format),
		f.StoragePath,
		f.Size,
		f.ContentType,
		f.CreatedAt,
	)
	return scanFile(row)
}

// FindByFilename fetches a single manifest row.
func (r *GeneratedFilePostgres) FindByFilename(ctx context.Context, filename string) (*model.GeneratedFile, error) {
	const q = `SELECT ` + columns + ` FROM generated_files WHERE filename = $1`
	f, err := scanFile(r.db.QueryRowContext(ctx, q, filename))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List returns rows using LIMIT/OFFSET pagination and a total count.
func (r *GeneratedFilePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.GeneratedFile], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM generated_files`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `SELECT ` + columns + `
		FROM generated_files
		ORDER BY created_at DESC, filename DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.GeneratedFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.GeneratedFile]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes rows by filename. It does not return an error if a row does not exist.
func (r *GeneratedFilePostgres) Delete(ctx context.Context, filenames ...string) error {
	const q = `DELETE FROM generated_files WHERE filename = $1`
	for _, name := range filenames {
		if _, err := r.db.ExecContext(ctx, q, name); err != nil {
			return err
		}
	}
	return nil
}
