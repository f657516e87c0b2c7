package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/clientvault/clientvault/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

// PostgresUserRepository persists User documents together with their
// client and file-type reference sets.
type PostgresUserRepository struct {
	DB *sqlx.DB
}

// NewPostgresUserRepository creates a repository over the given handle.
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Create inserts the user and its reference rows in one transaction.
// A username collision surfaces as ErrDuplicateLogin.
func (r *PostgresUserRepository) Create(ctx context.Context, u models.User) (*models.User, error) {
	u.ID = uuid.NewString()

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO users (id, name, username, password_hash, user_type_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at
	`, u.ID, u.Name, u.Username, u.PasswordHash, u.UserTypeID).Scan(&u.CreatedAt)
	if err != nil {
		return nil, translateUserError(err)
	}

	if err := insertUserRefs(ctx, tx, u); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &u, nil
}

// Update replaces the user's fields and reference sets. An empty
// PasswordHash keeps the stored credential.
func (r *PostgresUserRepository) Update(ctx context.Context, u models.User) (*models.User, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var res sql.Result
	if u.PasswordHash != "" {
		res, err = tx.ExecContext(ctx, `
			UPDATE users SET name = $2, username = $3, user_type_id = $4, password_hash = $5 WHERE id = $1
		`, u.ID, u.Name, u.Username, u.UserTypeID, u.PasswordHash)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE users SET name = $2, username = $3, user_type_id = $4 WHERE id = $1
		`, u.ID, u.Name, u.Username, u.UserTypeID)
	}
	if err != nil {
		return nil, translateUserError(err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, models.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_clients WHERE user_id = $1`, u.ID); err != nil {
		return nil, fmt.Errorf("clear user clients: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_file_types WHERE user_id = $1`, u.ID); err != nil {
		return nil, fmt.Errorf("clear user file types: %w", err)
	}
	if err := insertUserRefs(ctx, tx, u); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &u, nil
}

// Delete removes one user or returns ErrNotFound. Junction rows cascade.
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetAll returns every user with its reference identifier sets loaded.
func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryxContext(ctx, userSelect+` ORDER BY u.created_at`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// GetByUsername returns one user by login name or ErrNotFound.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	rows, err := r.DB.QueryxContext(ctx, userSelect+` WHERE u.username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("select user: %w", err)
		}
		return nil, models.ErrNotFound
	}
	return scanUser(rows)
}

const userSelect = `
	SELECT u.id, u.name, u.username, u.password_hash, u.user_type_id, u.created_at,
		COALESCE((SELECT array_agg(client_id) FROM user_clients WHERE user_id = u.id), '{}') AS client_ids,
		COALESCE((SELECT array_agg(file_type_id) FROM user_file_types WHERE user_id = u.id), '{}') AS file_type_ids
	FROM users u`

func scanUser(rows *sqlx.Rows) (*models.User, error) {
	var u models.User
	var clientIDs pq.StringArray
	var fileTypeIDs pq.Int64Array
	err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.UserTypeID, &u.CreatedAt, &clientIDs, &fileTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ClientIDs = []string(clientIDs)
	u.FileTypeIDs = make([]int, 0, len(fileTypeIDs))
	for _, id := range fileTypeIDs {
		u.FileTypeIDs = append(u.FileTypeIDs, int(id))
	}
	return &u, nil
}

func insertUserRefs(ctx context.Context, tx *sqlx.Tx, u models.User) error {
	for _, clientID := range u.ClientIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_clients (user_id, client_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, u.ID, clientID); err != nil {
			return fmt.Errorf("insert user client: %w", err)
		}
	}
	for _, fileTypeID := range u.FileTypeIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_file_types (user_id, file_type_id) VALUES ($1, $2) ON CONFLICT DO NOTHING
		`, u.ID, fileTypeID); err != nil {
			return fmt.Errorf("insert user file type: %w", err)
		}
	}
	return nil
}

func translateUserError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return models.ErrDuplicateLogin
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return fmt.Errorf("write user: %w", err)
}
