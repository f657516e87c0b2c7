package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clientvault/clientvault/internal/models"
)

// memActivityRepo is an in-memory ActivityRepository mirroring the
// one-record-per-user invariant of the real store.
type memActivityRepo struct {
	records map[string]*models.Activity
	creates int
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{records: map[string]*models.Activity{}}
}

func (m *memActivityRepo) FindByUserName(ctx context.Context, userName string) (*models.Activity, error) {
	if a, ok := m.records[userName]; ok {
		return a, nil
	}
	return nil, models.ErrNotFound
}

func (m *memActivityRepo) Create(ctx context.Context, userName string) (*models.Activity, error) {
	if a, ok := m.records[userName]; ok {
		return a, nil
	}
	m.creates++
	a := &models.Activity{ID: userName + "-record", UserName: userName, Downloads: []models.Download{}}
	m.records[userName] = a
	return a, nil
}

func (m *memActivityRepo) AppendDownload(ctx context.Context, activityID string, d models.Download) (*models.Download, error) {
	for _, a := range m.records {
		if a.ID == activityID {
			a.Downloads = append(a.Downloads, d)
			return &d, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memActivityRepo) GetAll(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range m.records {
		out = append(out, *a)
	}
	return out, nil
}

func TestLogLogin_Idempotent(t *testing.T) {
	repo := newMemActivityRepo()
	svc := NewActivityService(repo)

	first, err := svc.LogLogin(context.Background(), "bob")
	if err != nil {
		t.Fatalf("first LogLogin returned error: %v", err)
	}
	second, err := svc.LogLogin(context.Background(), "bob")
	if err != nil {
		t.Fatalf("second LogLogin returned error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same record both times, got %q and %q", first.ID, second.ID)
	}
	if repo.creates != 1 {
		t.Errorf("expected exactly one record created, got %d", repo.creates)
	}
}

func TestLogLogin_EmptyUserName(t *testing.T) {
	svc := NewActivityService(newMemActivityRepo())

	if _, err := svc.LogLogin(context.Background(), "  "); !models.IsValidation(err) {
		t.Errorf("error = %v; want ValidationError", err)
	}
}

func TestLogDownload_RequiresSession(t *testing.T) {
	svc := NewActivityService(newMemActivityRepo())

	_, err := svc.LogDownload(context.Background(), "bob", "Acme", "report.pdf")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v; want ErrNotFound before any login", err)
	}
}

func TestLogDownload_AppendsToSession(t *testing.T) {
	repo := newMemActivityRepo()
	svc := NewActivityService(repo)

	if _, err := svc.LogLogin(context.Background(), "bob"); err != nil {
		t.Fatalf("LogLogin returned error: %v", err)
	}

	a, err := svc.LogDownload(context.Background(), "bob", "Acme", "report.pdf")
	if err != nil {
		t.Fatalf("LogDownload returned error: %v", err)
	}
	if len(a.Downloads) != 1 {
		t.Fatalf("expected one download entry, got %d", len(a.Downloads))
	}
	if a.Downloads[0].ClientName != "Acme" || a.Downloads[0].FileName != "report.pdf" {
		t.Errorf("unexpected entry: %+v", a.Downloads[0])
	}
}

func TestLogDownload_MissingFields(t *testing.T) {
	svc := NewActivityService(newMemActivityRepo())

	cases := []struct {
		name                           string
		userName, clientName, fileName string
	}{
		{"no user", "", "Acme", "f.pdf"},
		{"no client", "bob", "", "f.pdf"},
		{"no file", "bob", "Acme", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.LogDownload(context.Background(), tc.userName, tc.clientName, tc.fileName)
			if !models.IsValidation(err) {
				t.Errorf("error = %v; want ValidationError", err)
			}
		})
	}
}
