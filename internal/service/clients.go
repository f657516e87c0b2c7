package service

import (
	"context"
	"strings"

	"github.com/clientvault/clientvault/internal/models"
)

// ClientRepository defines the persistence operations required by the
// client service.
type ClientRepository interface {
	Create(ctx context.Context, c models.Client) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id string) (*models.Client, error)
	Update(ctx context.Context, c models.Client) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

// ClientService validates and persists tenant companies.
type ClientService struct {
	repo ClientRepository
}

// NewClientService constructs a ClientService using the provided repository.
func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// validateClient checks every required field before any persistence attempt.
func validateClient(c models.Client) error {
	fields := []struct {
		name  string
		value string
	}{
		{"federalId", c.FederalID},
		{"stateId", c.StateID},
		{"companyName", c.CompanyName},
		{"clientName", c.ClientName},
		{"address", c.Address},
		{"email", c.Email},
		{"phoneNumber", c.PhoneNumber},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &models.ValidationError{Field: f.name}
		}
	}
	if c.EmployeeCount <= 0 {
		return &models.ValidationError{Field: "employeeCount"}
	}
	if c.StartDate.IsZero() {
		return &models.ValidationError{Field: "startDate"}
	}
	return nil
}

// Create validates and stores a new client, returning it with its
// generated identifier.
func (s *ClientService) Create(ctx context.Context, c models.Client) (*models.Client, error) {
	if err := validateClient(c); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

// GetAll returns every client.
func (s *ClientService) GetAll(ctx context.Context) ([]models.Client, error) {
	return s.repo.GetAll(ctx)
}

// Update validates and replaces the identified client.
func (s *ClientService) Update(ctx context.Context, c models.Client) (*models.Client, error) {
	if err := validateClient(c); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, c)
}

// Delete removes the identified client. Referencing users and files keep
// their now-dangling identifiers; reads resolve those to null.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
