package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clientvault/clientvault/internal/auth"
	"github.com/clientvault/clientvault/internal/models"
)

type mockUserRepo struct {
	CreateFunc        func(ctx context.Context, u models.User) (*models.User, error)
	GetAllFunc        func(ctx context.Context) ([]models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	UpdateFunc        func(ctx context.Context, u models.User) (*models.User, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u models.User) (*models.User, error) {
	return m.CreateFunc(ctx, u)
}
func (m *mockUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return m.GetAllFunc(ctx)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}
func (m *mockUserRepo) Update(ctx context.Context, u models.User) (*models.User, error) {
	return m.UpdateFunc(ctx, u)
}
func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockClientGetter struct {
	byID map[string]*models.Client
}

func (m *mockClientGetter) GetByID(ctx context.Context, id string) (*models.Client, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, models.ErrNotFound
}

type mockUserTypeGetter struct {
	byID map[int]*models.UserType
}

func (m *mockUserTypeGetter) GetByID(ctx context.Context, id int) (*models.UserType, error) {
	if ut, ok := m.byID[id]; ok {
		return ut, nil
	}
	return nil, models.ErrNotFound
}

type mockFileTypeGetter struct {
	byID map[int]*models.FileType
}

func (m *mockFileTypeGetter) GetByID(ctx context.Context, id int) (*models.FileType, error) {
	if ft, ok := m.byID[id]; ok {
		return ft, nil
	}
	return nil, models.ErrNotFound
}

func testResolver() *Resolver {
	return NewResolver(
		&mockClientGetter{byID: map[string]*models.Client{
			"c1": {ID: "c1", ClientName: "Acme"},
		}},
		&mockUserTypeGetter{byID: map[int]*models.UserType{
			1: {ID: 1, UserType: "Admin"},
		}},
		&mockFileTypeGetter{byID: map[int]*models.FileType{
			1: {ID: 1, FileType: "Invoice"},
			2: {ID: 2, FileType: "Contract"},
		}},
	)
}

func aliceRepo(t *testing.T) *mockUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	alice := &models.User{
		ID:           "u1",
		Name:         "Alice",
		Username:     "alice",
		PasswordHash: string(hash),
		UserTypeID:   1,
		ClientIDs:    []string{"c1"},
		FileTypeIDs:  []int{1, 2},
	}
	return &mockUserRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return nil, models.ErrNotFound
		},
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	svc := NewAuthService(aliceRepo(t), testResolver(), tokens)

	token, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("claims.Username = %q; want %q", claims.Username, "alice")
	}
	if claims.UserType != "Admin" {
		t.Errorf("claims.UserType = %q; want %q", claims.UserType, "Admin")
	}
	if len(claims.ClientNames) != 1 || claims.ClientNames[0] != "Acme" {
		t.Errorf("claims.ClientNames = %v; want [Acme]", claims.ClientNames)
	}
	if len(claims.FileTypes) != 2 {
		t.Errorf("claims.FileTypes = %v; want two labels", claims.FileTypes)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	svc := NewAuthService(aliceRepo(t), testResolver(), tokens)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	svc := NewAuthService(aliceRepo(t), testResolver(), tokens)

	_, err := svc.Login(context.Background(), "mallory", "pw1")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("error = %v; want ErrInvalidCredentials", err)
	}
}

func TestLogin_DanglingUserTypeStillLogsIn(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	repo := aliceRepo(t)
	// Resolver with no user types: the reference dangles but login works.
	resolver := NewResolver(
		&mockClientGetter{byID: map[string]*models.Client{"c1": {ID: "c1", ClientName: "Acme"}}},
		&mockUserTypeGetter{byID: map[int]*models.UserType{}},
		&mockFileTypeGetter{byID: map[int]*models.FileType{}},
	)
	svc := NewAuthService(repo, resolver, tokens)

	token, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserType != "" {
		t.Errorf("claims.UserType = %q; want empty for a dangling reference", claims.UserType)
	}
}
