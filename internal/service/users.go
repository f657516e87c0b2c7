package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/clientvault/clientvault/internal/models"
)

// UserRepository defines the persistence operations required by the user
// and auth services.
type UserRepository interface {
	Create(ctx context.Context, u models.User) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, u models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// UserInput carries the fields accepted when creating or updating a user.
// Password is the plain secret; it is hashed before it reaches the store.
type UserInput struct {
	Name        string   `json:"name"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	UserTypeID  int      `json:"userType"`
	ClientIDs   []string `json:"clientName"`
	FileTypeIDs []int    `json:"fileType"`
}

// UserService validates and persists users.
type UserService struct {
	repo     UserRepository
	resolver *Resolver
}

// NewUserService constructs a UserService over the repository and resolver.
func NewUserService(repo UserRepository, resolver *Resolver) *UserService {
	return &UserService{repo: repo, resolver: resolver}
}

// validateUser checks required fields. Password presence is only enforced
// on create; an update with no password keeps the stored credential.
func validateUser(in UserInput, requirePassword bool) error {
	if strings.TrimSpace(in.Name) == "" {
		return &models.ValidationError{Field: "name"}
	}
	if strings.TrimSpace(in.Username) == "" {
		return &models.ValidationError{Field: "username"}
	}
	if requirePassword && strings.TrimSpace(in.Password) == "" {
		return &models.ValidationError{Field: "password"}
	}
	if in.UserTypeID <= 0 {
		return &models.ValidationError{Field: "userType"}
	}
	if len(in.ClientIDs) == 0 {
		return &models.ValidationError{Field: "clientName"}
	}
	if len(in.FileTypeIDs) == 0 {
		return &models.ValidationError{Field: "fileType"}
	}
	return nil
}

// Create validates the input, hashes the password, and stores the user.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := validateUser(in, true); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, models.User{
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: string(hash),
		UserTypeID:   in.UserTypeID,
		ClientIDs:    in.ClientIDs,
		FileTypeIDs:  in.FileTypeIDs,
	})
}

// GetAllResolved returns every user with references expanded.
func (s *UserService) GetAllResolved(ctx context.Context) ([]models.ResolvedUser, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resolved := make([]models.ResolvedUser, 0, len(users))
	for _, u := range users {
		ru, err := s.resolver.User(ctx, u)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *ru)
	}
	return resolved, nil
}

// Update validates the input and replaces the identified user. A supplied
// password is re-hashed; an empty one keeps the existing hash.
func (s *UserService) Update(ctx context.Context, id string, in UserInput) (*models.User, error) {
	if err := validateUser(in, false); err != nil {
		return nil, err
	}
	u := models.User{
		ID:          id,
		Name:        in.Name,
		Username:    in.Username,
		UserTypeID:  in.UserTypeID,
		ClientIDs:   in.ClientIDs,
		FileTypeIDs: in.FileTypeIDs,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	return s.repo.Update(ctx, u)
}

// Delete removes the identified user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
