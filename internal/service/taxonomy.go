package service

import (
	"context"
	"strings"

	"github.com/clientvault/clientvault/internal/models"
)

// UserTypeRepository defines the persistence operations for user types.
type UserTypeRepository interface {
	Create(ctx context.Context, label string) (*models.UserType, error)
	GetAll(ctx context.Context) ([]models.UserType, error)
	Update(ctx context.Context, id int, label string) (*models.UserType, error)
	Delete(ctx context.Context, id int) error
}

// FileTypeRepository defines the persistence operations for file types.
type FileTypeRepository interface {
	Create(ctx context.Context, label string) (*models.FileType, error)
	GetAll(ctx context.Context) ([]models.FileType, error)
	Update(ctx context.Context, id int, label string) (*models.FileType, error)
	Delete(ctx context.Context, id int) error
}

// UserTypeService manages the user-type taxonomy.
type UserTypeService struct {
	repo UserTypeRepository
}

// NewUserTypeService constructs a UserTypeService.
func NewUserTypeService(repo UserTypeRepository) *UserTypeService {
	return &UserTypeService{repo: repo}
}

// Create stores a new user type after checking the label is non-blank.
func (s *UserTypeService) Create(ctx context.Context, label string) (*models.UserType, error) {
	if strings.TrimSpace(label) == "" {
		return nil, &models.ValidationError{Field: "userType"}
	}
	return s.repo.Create(ctx, label)
}

// GetAll returns every user type in identifier order.
func (s *UserTypeService) GetAll(ctx context.Context) ([]models.UserType, error) {
	return s.repo.GetAll(ctx)
}

// Update changes the label of the identified user type.
func (s *UserTypeService) Update(ctx context.Context, id int, label string) (*models.UserType, error) {
	if strings.TrimSpace(label) == "" {
		return nil, &models.ValidationError{Field: "userType"}
	}
	return s.repo.Update(ctx, id, label)
}

// Delete removes the identified user type.
func (s *UserTypeService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// FileTypeService manages the file-type taxonomy.
type FileTypeService struct {
	repo FileTypeRepository
}

// NewFileTypeService constructs a FileTypeService.
func NewFileTypeService(repo FileTypeRepository) *FileTypeService {
	return &FileTypeService{repo: repo}
}

// Create stores a new file type after checking the label is non-blank.
func (s *FileTypeService) Create(ctx context.Context, label string) (*models.FileType, error) {
	if strings.TrimSpace(label) == "" {
		return nil, &models.ValidationError{Field: "fileType"}
	}
	return s.repo.Create(ctx, label)
}

// GetAll returns every file type in identifier order.
func (s *FileTypeService) GetAll(ctx context.Context) ([]models.FileType, error) {
	return s.repo.GetAll(ctx)
}

// Update changes the label of the identified file type.
func (s *FileTypeService) Update(ctx context.Context, id int, label string) (*models.FileType, error) {
	if strings.TrimSpace(label) == "" {
		return nil, &models.ValidationError{Field: "fileType"}
	}
	return s.repo.Update(ctx, id, label)
}

// Delete removes the identified file type.
func (s *FileTypeService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
