package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientvault/clientvault/internal/models"
	"github.com/clientvault/clientvault/internal/service"
)

type mockUserService struct {
	CreateFunc func(ctx context.Context, in service.UserInput) (*models.User, error)
	GetAllFunc func(ctx context.Context) ([]models.ResolvedUser, error)
	UpdateFunc func(ctx context.Context, id string, in service.UserInput) (*models.User, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockUserService) Create(ctx context.Context, in service.UserInput) (*models.User, error) {
	return m.CreateFunc(ctx, in)
}
func (m *mockUserService) GetAllResolved(ctx context.Context) ([]models.ResolvedUser, error) {
	return m.GetAllFunc(ctx)
}
func (m *mockUserService) Update(ctx context.Context, id string, in service.UserInput) (*models.User, error) {
	return m.UpdateFunc(ctx, id, in)
}
func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

type mockAuthService struct {
	LoginFunc func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return m.LoginFunc(ctx, username, password)
}

func userRouter(svc UserService, auth AuthService) http.Handler {
	h := &UserHandler{Service: svc, Auth: auth}
	r := chi.NewRouter()
	r.Post("/api/login", h.Login)
	r.Post("/api/users", h.Create)
	r.Get("/api/users", h.GetAll)
	r.Put("/api/users/{id}", h.Update)
	r.Delete("/api/users/{id}", h.Delete)
	return r
}

func TestUserHandler_Create_AcceptsScalarClientName(t *testing.T) {
	var got service.UserInput
	router := userRouter(&mockUserService{
		CreateFunc: func(ctx context.Context, in service.UserInput) (*models.User, error) {
			got = in
			return &models.User{ID: "u1"}, nil
		},
	}, nil)

	body := `{"name":"Alice","username":"alice","password":"pw1","userType":1,"clientName":"c1","fileType":[1,2]}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"c1"}, got.ClientIDs)
	assert.Equal(t, []int{1, 2}, got.FileTypeIDs)
}

func TestUserHandler_Create_AcceptsClientNameArray(t *testing.T) {
	var got service.UserInput
	router := userRouter(&mockUserService{
		CreateFunc: func(ctx context.Context, in service.UserInput) (*models.User, error) {
			got = in
			return &models.User{ID: "u1"}, nil
		},
	}, nil)

	body := `{"name":"Alice","username":"alice","password":"pw1","userType":1,"clientName":["c1","c2"],"fileType":[1]}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"c1", "c2"}, got.ClientIDs)
}

func TestUserHandler_Create_DuplicateUsername(t *testing.T) {
	router := userRouter(&mockUserService{
		CreateFunc: func(ctx context.Context, in service.UserInput) (*models.User, error) {
			return nil, models.ErrDuplicateLogin
		},
	}, nil)

	body := `{"name":"Alice","username":"alice","password":"pw1","userType":1,"clientName":"c1","fileType":[1]}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserHandler_Update_PathIDWins(t *testing.T) {
	var gotID string
	router := userRouter(&mockUserService{
		UpdateFunc: func(ctx context.Context, id string, in service.UserInput) (*models.User, error) {
			gotID = id
			return &models.User{ID: id}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/users/u7", strings.NewReader(`{"name":"Alice","username":"alice","userType":1,"clientName":"c1","fileType":[1]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u7", gotID)
}

func TestUserHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginFunc  func(ctx context.Context, username, password string) (string, error)
		wantStatus int
		wantToken  string
	}{
		{
			name: "success",
			body: `{"username":"alice","password":"pw1"}`,
			loginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "tok123", nil
			},
			wantStatus: http.StatusOK,
			wantToken:  "tok123",
		},
		{
			name: "bad credentials",
			body: `{"username":"alice","password":"wrong"}`,
			loginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "", models.ErrInvalidCredentials
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"username":`,
			loginFunc:  nil,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := userRouter(nil, &mockAuthService{LoginFunc: tt.loginFunc})

			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantToken != "" {
				var resp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.wantToken, resp["token"])
				assert.Equal(t, "Login successful", resp["message"])
			}
		})
	}
}
