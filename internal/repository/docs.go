package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clientvault/clientvault/internal/models"
)

// PostgresDocRepository persists CompanyDoc metadata. Company documents are
// kept apart from generic files on purpose: separate table, separate
// directory, same gateway contract.
type PostgresDocRepository struct {
	DB *sqlx.DB
}

// NewPostgresDocRepository creates a repository over the given handle.
func NewPostgresDocRepository(db *sqlx.DB) *PostgresDocRepository {
	return &PostgresDocRepository{DB: db}
}

// Create records the metadata for a stored company document.
func (r *PostgresDocRepository) Create(ctx context.Context, d models.CompanyDoc) (*models.CompanyDoc, error) {
	d.ID = uuid.NewString()
	err := r.DB.QueryRowxContext(ctx, `
		INSERT INTO company_docs (id, file_name, client_id)
		VALUES ($1, $2, $3) RETURNING upload_date
	`, d.ID, d.FileName, d.ClientID).Scan(&d.UploadDate)
	if err != nil {
		return nil, fmt.Errorf("insert company doc: %w", err)
	}
	return &d, nil
}

// GetAll returns every company document record, newest first.
func (r *PostgresDocRepository) GetAll(ctx context.Context) ([]models.CompanyDoc, error) {
	var docs []models.CompanyDoc
	if err := r.DB.SelectContext(ctx, &docs, `SELECT * FROM company_docs ORDER BY upload_date DESC`); err != nil {
		return nil, fmt.Errorf("select company docs: %w", err)
	}
	return docs, nil
}

// GetByID returns one record or ErrNotFound.
func (r *PostgresDocRepository) GetByID(ctx context.Context, id string) (*models.CompanyDoc, error) {
	var d models.CompanyDoc
	err := r.DB.GetContext(ctx, &d, `SELECT * FROM company_docs WHERE id = $1`, id)
	if err != nil {
		return nil, translateNoRows(err, "select company doc")
	}
	return &d, nil
}

// GetByFileName returns the record for a stored name or ErrNotFound.
func (r *PostgresDocRepository) GetByFileName(ctx context.Context, fileName string) (*models.CompanyDoc, error) {
	var d models.CompanyDoc
	err := r.DB.GetContext(ctx, &d, `SELECT * FROM company_docs WHERE file_name = $1`, fileName)
	if err != nil {
		return nil, translateNoRows(err, "select company doc")
	}
	return &d, nil
}

// Update changes the client reference of the identified document.
func (r *PostgresDocRepository) Update(ctx context.Context, d models.CompanyDoc) (*models.CompanyDoc, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE company_docs SET client_id = $2 WHERE id = $1`, d.ID, d.ClientID)
	if err != nil {
		return nil, fmt.Errorf("update company doc: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, models.ErrNotFound
	}
	return &d, nil
}

// DeleteByFileName removes the metadata row for a stored name. Idempotent,
// matching the file repository's delete contract.
func (r *PostgresDocRepository) DeleteByFileName(ctx context.Context, fileName string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM company_docs WHERE file_name = $1`, fileName); err != nil {
		return fmt.Errorf("delete company doc: %w", err)
	}
	return nil
}
