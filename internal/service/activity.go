package service

import (
	"context"
	"strings"

	"github.com/clientvault/clientvault/internal/models"
)

// ActivityRepository defines the persistence operations for the session log.
type ActivityRepository interface {
	FindByUserName(ctx context.Context, userName string) (*models.Activity, error)
	Create(ctx context.Context, userName string) (*models.Activity, error)
	AppendDownload(ctx context.Context, activityID string, d models.Download) (*models.Download, error)
	GetAll(ctx context.Context) ([]models.Activity, error)
}

// ActivityService records logins and downloads in the session-log model:
// one record per user name, downloads appended in place.
type ActivityService struct {
	repo ActivityRepository
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogLogin returns the user's session record, creating it on first login.
// Calling it again for the same user returns the existing record unchanged.
func (s *ActivityService) LogLogin(ctx context.Context, userName string) (*models.Activity, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, &models.ValidationError{Field: "userName"}
	}
	return s.repo.Create(ctx, userName)
}

// LogDownload appends a downloaded-file entry to the user's session record.
// It fails with ErrNotFound when no session record exists yet.
func (s *ActivityService) LogDownload(ctx context.Context, userName, clientName, fileName string) (*models.Activity, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, &models.ValidationError{Field: "userName"}
	}
	if strings.TrimSpace(clientName) == "" {
		return nil, &models.ValidationError{Field: "clientName"}
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, &models.ValidationError{Field: "fileName"}
	}

	activity, err := s.repo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.AppendDownload(ctx, activity.ID, models.Download{ClientName: clientName, FileName: fileName})
	if err != nil {
		return nil, err
	}
	activity.Downloads = append([]models.Download{*d}, activity.Downloads...)
	return activity, nil
}

// ListAll returns every session record, most recently active first.
func (s *ActivityService) ListAll(ctx context.Context) ([]models.Activity, error) {
	return s.repo.GetAll(ctx)
}

// ListForUser returns the session record for one user name.
func (s *ActivityService) ListForUser(ctx context.Context, userName string) (*models.Activity, error) {
	return s.repo.FindByUserName(ctx, userName)
}
