package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/clientvault/clientvault/internal/models"
)

// PostgresUserTypeRepository persists UserType documents. Identifiers are
// small sequential integers assigned by the database sequence, so
// assignment stays linearizable under concurrent creates.
type PostgresUserTypeRepository struct {
	DB *sqlx.DB
}

// NewPostgresUserTypeRepository creates a repository over the given handle.
func NewPostgresUserTypeRepository(db *sqlx.DB) *PostgresUserTypeRepository {
	return &PostgresUserTypeRepository{DB: db}
}

// Create inserts the user type and returns it with its assigned identifier.
func (r *PostgresUserTypeRepository) Create(ctx context.Context, label string) (*models.UserType, error) {
	var ut models.UserType
	err := r.DB.QueryRowxContext(ctx, `
		INSERT INTO user_types (user_type) VALUES ($1) RETURNING id, user_type, created_at
	`, label).StructScan(&ut)
	if err != nil {
		return nil, fmt.Errorf("insert user type: %w", err)
	}
	return &ut, nil
}

// GetAll returns every user type in identifier order.
func (r *PostgresUserTypeRepository) GetAll(ctx context.Context) ([]models.UserType, error) {
	var types []models.UserType
	if err := r.DB.SelectContext(ctx, &types, `SELECT * FROM user_types ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select user types: %w", err)
	}
	return types, nil
}

// GetByID returns one user type or ErrNotFound.
func (r *PostgresUserTypeRepository) GetByID(ctx context.Context, id int) (*models.UserType, error) {
	var ut models.UserType
	err := r.DB.GetContext(ctx, &ut, `SELECT * FROM user_types WHERE id = $1`, id)
	if err != nil {
		return nil, translateNoRows(err, "select user type")
	}
	return &ut, nil
}

// Update changes the label of the identified user type.
func (r *PostgresUserTypeRepository) Update(ctx context.Context, id int, label string) (*models.UserType, error) {
	var ut models.UserType
	err := r.DB.QueryRowxContext(ctx, `
		UPDATE user_types SET user_type = $2 WHERE id = $1 RETURNING id, user_type, created_at
	`, id, label).StructScan(&ut)
	if err != nil {
		return nil, translateNoRows(err, "update user type")
	}
	return &ut, nil
}

// Delete removes one user type or returns ErrNotFound.
func (r *PostgresUserTypeRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM user_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user type: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
