package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clientvault/clientvault/internal/models"
)

// translateNoRows maps sql.ErrNoRows to models.ErrNotFound and wraps
// anything else with the operation name.
func translateNoRows(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// PostgresFileTypeRepository persists FileType documents, with the same
// sequence-assigned integer identifiers as user types.
type PostgresFileTypeRepository struct {
	DB *sqlx.DB
}

// NewPostgresFileTypeRepository creates a repository over the given handle.
func NewPostgresFileTypeRepository(db *sqlx.DB) *PostgresFileTypeRepository {
	return &PostgresFileTypeRepository{DB: db}
}

// Create inserts the file type and returns it with its assigned identifier.
func (r *PostgresFileTypeRepository) Create(ctx context.Context, label string) (*models.FileType, error) {
	var ft models.FileType
	err := r.DB.QueryRowxContext(ctx, `
		INSERT INTO file_types (file_type) VALUES ($1) RETURNING id, file_type, created_at
	`, label).StructScan(&ft)
	if err != nil {
		return nil, fmt.Errorf("insert file type: %w", err)
	}
	return &ft, nil
}

// GetAll returns every file type in identifier order.
func (r *PostgresFileTypeRepository) GetAll(ctx context.Context) ([]models.FileType, error) {
	var types []models.FileType
	if err := r.DB.SelectContext(ctx, &types, `SELECT * FROM file_types ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select file types: %w", err)
	}
	return types, nil
}

// GetByID returns one file type or ErrNotFound.
func (r *PostgresFileTypeRepository) GetByID(ctx context.Context, id int) (*models.FileType, error) {
	var ft models.FileType
	err := r.DB.GetContext(ctx, &ft, `SELECT * FROM file_types WHERE id = $1`, id)
	if err != nil {
		return nil, translateNoRows(err, "select file type")
	}
	return &ft, nil
}

// Update changes the label of the identified file type.
func (r *PostgresFileTypeRepository) Update(ctx context.Context, id int, label string) (*models.FileType, error) {
	var ft models.FileType
	err := r.DB.QueryRowxContext(ctx, `
		UPDATE file_types SET file_type = $2 WHERE id = $1 RETURNING id, file_type, created_at
	`, id, label).StructScan(&ft)
	if err != nil {
		return nil, translateNoRows(err, "update file type")
	}
	return &ft, nil
}

// Delete removes one file type or returns ErrNotFound.
func (r *PostgresFileTypeRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM file_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete file type: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
