// Package db opens the PostgreSQL connection and bootstraps the schema.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
    id TEXT PRIMARY KEY,
    federal_id TEXT NOT NULL,
    state_id TEXT NOT NULL,
    company_name TEXT NOT NULL,
    client_name TEXT NOT NULL,
    address TEXT NOT NULL,
    email TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    employee_count INTEGER NOT NULL,
    start_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS user_types (
    id SERIAL PRIMARY KEY,
    user_type TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS file_types (
    id SERIAL PRIMARY KEY,
    file_type TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    user_type_id INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_clients (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    client_id TEXT NOT NULL,
    PRIMARY KEY (user_id, client_id)
);

CREATE TABLE IF NOT EXISTS user_file_types (
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    file_type_id INTEGER NOT NULL,
    PRIMARY KEY (user_id, file_type_id)
);

CREATE TABLE IF NOT EXISTS files (
    id TEXT PRIMARY KEY,
    file_name TEXT NOT NULL,
    client_id TEXT NOT NULL,
    user_type_id INTEGER NOT NULL,
    upload_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS file_file_types (
    file_id TEXT NOT NULL REFERENCES files(id) ON DELETE CASCADE,
    file_type_id INTEGER NOT NULL,
    PRIMARY KEY (file_id, file_type_id)
);

CREATE TABLE IF NOT EXISTS company_docs (
    id TEXT PRIMARY KEY,
    file_name TEXT NOT NULL,
    client_id TEXT NOT NULL,
    upload_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    user_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS activity_downloads (
    id TEXT PRIMARY KEY,
    activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
    client_name TEXT NOT NULL,
    file_name TEXT NOT NULL,
    download_time TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// InitPostgres opens a connection to the given DSN, verifies it with a ping,
// applies pool limits, and creates the schema.
//
// Note: cross-entity reference columns (client_id, user_type_id,
// file_type_id on users/files/docs) intentionally carry no foreign-key
// constraints. Shared reference data is never cascade-deleted, so dangling
// references are possible and reads resolve them to null.
func InitPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// Connect tries the remote DSN first and falls back to the local one,
// logging which database ended up serving the process.
func Connect(remoteDSN, localDSN string, log *zap.Logger) (*sqlx.DB, error) {
	if remoteDSN != "" {
		db, err := InitPostgres(remoteDSN)
		if err == nil {
			log.Info("connected to remote database")
			return db, nil
		}
		log.Warn("failed to connect to remote database, trying local", zap.Error(err))
	}

	db, err := InitPostgres(localDSN)
	if err != nil {
		return nil, fmt.Errorf("connect local database: %w", err)
	}
	log.Info("connected to local database")
	return db, nil
}
