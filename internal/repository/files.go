package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/clientvault/clientvault/internal/models"
)

// PostgresFileRepository persists File metadata for the transfer gateway.
type PostgresFileRepository struct {
	DB *sqlx.DB
}

// NewPostgresFileRepository creates a repository over the given handle.
func NewPostgresFileRepository(db *sqlx.DB) *PostgresFileRepository {
	return &PostgresFileRepository{DB: db}
}

// Create records the metadata for a stored file.
func (r *PostgresFileRepository) Create(ctx context.Context, f models.File) (*models.File, error) {
	f.ID = uuid.NewString()

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO files (id, file_name, client_id, user_type_id)
		VALUES ($1, $2, $3, $4) RETURNING upload_date
	`, f.ID, f.FileName, f.ClientID, f.UserTypeID).Scan(&f.UploadDate)
	if err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	for _, fileTypeID := range f.FileTypeIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO file_file_types (file_id, file_type_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, f.ID, fileTypeID); err != nil {
			return nil, fmt.Errorf("insert file type ref: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &f, nil
}

const fileSelect = `
	SELECT f.id, f.file_name, f.client_id, f.user_type_id, f.upload_date,
		COALESCE((SELECT array_agg(file_type_id) FROM file_file_types WHERE file_id = f.id), '{}') AS file_type_ids
	FROM files f`

// GetAll returns every file metadata record, newest first.
func (r *PostgresFileRepository) GetAll(ctx context.Context) ([]models.File, error) {
	rows, err := r.DB.QueryxContext(ctx, fileSelect+` ORDER BY f.upload_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("select files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

// GetByID returns one metadata record or ErrNotFound.
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	return r.getOne(ctx, ` WHERE f.id = $1`, id)
}

// GetByFileName returns the metadata record for a stored name or ErrNotFound.
func (r *PostgresFileRepository) GetByFileName(ctx context.Context, fileName string) (*models.File, error) {
	return r.getOne(ctx, ` WHERE f.file_name = $1`, fileName)
}

func (r *PostgresFileRepository) getOne(ctx context.Context, where string, arg any) (*models.File, error) {
	rows, err := r.DB.QueryxContext(ctx, fileSelect+where, arg)
	if err != nil {
		return nil, fmt.Errorf("select file: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("select file: %w", err)
		}
		return nil, models.ErrNotFound
	}
	return scanFile(rows)
}

// Update replaces the file's reference fields (not the stored name).
func (r *PostgresFileRepository) Update(ctx context.Context, f models.File) (*models.File, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE files SET client_id = $2, user_type_id = $3 WHERE id = $1
	`, f.ID, f.ClientID, f.UserTypeID)
	if err != nil {
		return nil, fmt.Errorf("update file: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, models.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM file_file_types WHERE file_id = $1`, f.ID); err != nil {
		return nil, fmt.Errorf("clear file type refs: %w", err)
	}
	for _, fileTypeID := range f.FileTypeIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO file_file_types (file_id, file_type_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, f.ID, fileTypeID); err != nil {
			return nil, fmt.Errorf("insert file type ref: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &f, nil
}

// DeleteByFileName removes the metadata row for a stored name. Deleting an
// already-deleted record succeeds, so a retry after a partial file/metadata
// delete can finish cleanly.
func (r *PostgresFileRepository) DeleteByFileName(ctx context.Context, fileName string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM files WHERE file_name = $1`, fileName); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func scanFile(rows *sqlx.Rows) (*models.File, error) {
	var f models.File
	var fileTypeIDs pq.Int64Array
	err := rows.Scan(&f.ID, &f.FileName, &f.ClientID, &f.UserTypeID, &f.UploadDate, &fileTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	f.FileTypeIDs = make([]int, 0, len(fileTypeIDs))
	for _, id := range fileTypeIDs {
		f.FileTypeIDs = append(f.FileTypeIDs, int(id))
	}
	return &f, nil
}
