// Package main initializes and starts the document management HTTP server,
// setting up configuration, logging, database connections, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/clientvault/clientvault/internal/auth"
	"github.com/clientvault/clientvault/internal/config"
	"github.com/clientvault/clientvault/internal/db"
	"github.com/clientvault/clientvault/internal/logger"
	"github.com/clientvault/clientvault/internal/models"
	"github.com/clientvault/clientvault/internal/repository"
	"github.com/clientvault/clientvault/internal/server/handler/http"
	"github.com/clientvault/clientvault/internal/service"
	"github.com/clientvault/clientvault/internal/storage"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger := logger.New()
	defer func() { _ = zapLogger.Sync() }()

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET must be set")
	}

	// Connect to PostgreSQL: remote first, local fallback.
	database, err := db.Connect(options.RemoteDatabaseDSN, options.LocalDatabaseDSN, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Create the upload directories on demand.
	fileStore, err := storage.NewDiskStore(options.UploadDir)
	if err != nil {
		zapLogger.Fatal("cannot init upload storage", zap.Error(err))
	}
	docStore, err := storage.NewDiskStore(options.DocUploadDir)
	if err != nil {
		zapLogger.Fatal("cannot init document storage", zap.Error(err))
	}

	// Initialize repositories, one store handle per entity kind.
	clientRepo := repository.NewPostgresClientRepository(database)
	userTypeRepo := repository.NewPostgresUserTypeRepository(database)
	fileTypeRepo := repository.NewPostgresFileTypeRepository(database)
	userRepo := repository.NewPostgresUserRepository(database)
	fileRepo := repository.NewPostgresFileRepository(database)
	docRepo := repository.NewPostgresDocRepository(database)
	activityRepo := repository.NewPostgresActivityRepository(database)

	// Initialize business-logic services.
	resolver := service.NewResolver(clientRepo, userTypeRepo, fileTypeRepo)
	tokens := auth.NewManager(options.JWTSecret, options.TokenTTL)

	clientService := service.NewClientService(clientRepo)
	userTypeService := service.NewUserTypeService(userTypeRepo)
	fileTypeService := service.NewFileTypeService(fileTypeRepo)
	userService := service.NewUserService(userRepo, resolver)
	authService := service.NewAuthService(userRepo, resolver, tokens)
	fileService := service.NewFileService(fileRepo, fileStore, resolver)
	docService := service.NewDocService(docRepo, docStore, resolver)
	activityService := service.NewActivityService(activityRepo)

	// Seed the first admin account when configured and no users exist.
	if err := seedAdmin(context.Background(), options, userTypeRepo, userRepo, zapLogger); err != nil {
		zapLogger.Fatal("cannot seed admin account", zap.Error(err))
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Clients:   &http.ClientHandler{Service: clientService},
		UserTypes: &http.UserTypeHandler{Service: userTypeService},
		FileTypes: &http.FileTypeHandler{Service: fileTypeService},
		Users:     &http.UserHandler{Service: userService, Auth: authService},
		Files:     &http.FileHandler{Service: fileService},
		Docs:      &http.DocHandler{Service: docService},
		Activity:  &http.ActivityHandler{Service: activityService},
	}, tokens, zapLogger)

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := nethttp.ListenAndServe(options.Port, router); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// seedAdmin creates an Admin user type and account from the configured
// credentials when the user table is empty. With the auth guard applied to
// every privileged route, a fresh deployment needs one account to start from.
func seedAdmin(
	ctx context.Context,
	options *config.Options,
	userTypes *repository.PostgresUserTypeRepository,
	users *repository.PostgresUserRepository,
	log *zap.Logger,
) error {
	if options.AdminUsername == "" || options.AdminPassword == "" {
		return nil
	}

	existing, err := users.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	adminType, err := findOrCreateAdminType(ctx, userTypes)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(options.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = users.Create(ctx, models.User{
		Name:         "Administrator",
		Username:     options.AdminUsername,
		PasswordHash: string(hash),
		UserTypeID:   adminType.ID,
	})
	if errors.Is(err, models.ErrDuplicateLogin) {
		return nil
	}
	if err == nil {
		log.Info("seeded admin account", zap.String("username", options.AdminUsername))
	}
	return err
}

func findOrCreateAdminType(ctx context.Context, userTypes *repository.PostgresUserTypeRepository) (*models.UserType, error) {
	existing, err := userTypes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, ut := range existing {
		if ut.UserType == "Admin" {
			return &ut, nil
		}
	}
	return userTypes.Create(ctx, "Admin")
}
