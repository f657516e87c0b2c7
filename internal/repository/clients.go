// Package repository provides PostgreSQL persistence for all entity kinds.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clientvault/clientvault/internal/models"
)

// PostgresClientRepository persists Client documents.
type PostgresClientRepository struct {
	// DB is the database handle for executing queries.
	DB *sqlx.DB
}

// NewPostgresClientRepository creates a repository over the given handle.
func NewPostgresClientRepository(db *sqlx.DB) *PostgresClientRepository {
	return &PostgresClientRepository{DB: db}
}

// Create inserts the client with a generated identifier and returns it.
func (r *PostgresClientRepository) Create(ctx context.Context, c models.Client) (*models.Client, error) {
	c.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO clients (id, federal_id, state_id, company_name, client_name, address, email, phone_number, employee_count, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, c.ID, c.FederalID, c.StateID, c.CompanyName, c.ClientName, c.Address, c.Email, c.PhoneNumber, c.EmployeeCount, c.StartDate)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return &c, nil
}

// GetAll returns every client.
func (r *PostgresClientRepository) GetAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.DB.SelectContext(ctx, &clients, `SELECT * FROM clients`); err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}
	return clients, nil
}

// GetByID returns one client or ErrNotFound.
func (r *PostgresClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	err := r.DB.GetContext(ctx, &c, `SELECT * FROM clients WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select client: %w", err)
	}
	return &c, nil
}

// Update replaces every field of the identified client, returning the
// updated document or ErrNotFound.
func (r *PostgresClientRepository) Update(ctx context.Context, c models.Client) (*models.Client, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE clients SET federal_id = $2, state_id = $3, company_name = $4, client_name = $5,
			address = $6, email = $7, phone_number = $8, employee_count = $9, start_date = $10
		WHERE id = $1
	`, c.ID, c.FederalID, c.StateID, c.CompanyName, c.ClientName, c.Address, c.Email, c.PhoneNumber, c.EmployeeCount, c.StartDate)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

// Delete removes one client or returns ErrNotFound.
func (r *PostgresClientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
