// Package config provides functionality for managing configuration options
// for the application using command-line flags, a .env file, and environment
// variables.
package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// RemoteDatabaseDSN is the primary database connection string,
	// attempted first.
	RemoteDatabaseDSN string

	// LocalDatabaseDSN is the fallback database connection string used
	// when the remote database is unreachable.
	LocalDatabaseDSN string

	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string

	// TokenTTL is the validity window of an issued token.
	TokenTTL time.Duration

	// UploadDir is the directory holding uploaded files.
	UploadDir string

	// DocUploadDir is the directory holding uploaded company documents.
	DocUploadDir string

	// AdminUsername and AdminPassword seed the first admin account when
	// the user table is empty. Both empty disables seeding.
	AdminUsername string
	AdminPassword string
}

// options holds the current configuration values.
var options = &Options{TokenTTL: time.Hour}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", ":8020", "run on ip:port server")
	flag.StringVar(&options.RemoteDatabaseDSN, "d", "", "remote db address")
	flag.StringVar(&options.LocalDatabaseDSN, "l", "", "local fallback db address")
	flag.StringVar(&options.UploadDir, "uploads", "uploads", "directory for uploaded files")
	flag.StringVar(&options.DocUploadDir, "docuploads", "docuploads", "directory for company documents")
}

// Parse parses the command-line flags, loads a .env file when present, and
// applies environment-variable overrides. It returns a pointer to the Options
// struct containing the resolved configuration values.
func Parse() *Options {
	flag.Parse()

	// A missing .env file is not an error; env vars may come from the host.
	_ = godotenv.Load()

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Port = addr
	}
	if dsn := os.Getenv("DATABASE_REMOTE_DSN"); dsn != "" {
		options.RemoteDatabaseDSN = dsn
	}
	if dsn := os.Getenv("DATABASE_LOCAL_DSN"); dsn != "" {
		options.LocalDatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			options.TokenTTL = d
		}
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		options.UploadDir = dir
	}
	if dir := os.Getenv("DOC_UPLOAD_DIR"); dir != "" {
		options.DocUploadDir = dir
	}
	options.AdminUsername = os.Getenv("ADMIN_USERNAME")
	options.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	return options
}
