package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clientvault/clientvault/internal/models"
	"github.com/clientvault/clientvault/internal/service"
)

// UserService defines the interface for user operations required by the
// HTTP handlers.
type UserService interface {
	Create(ctx context.Context, in service.UserInput) (*models.User, error)
	GetAllResolved(ctx context.Context) ([]models.ResolvedUser, error)
	Update(ctx context.Context, id string, in service.UserInput) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// AuthService defines the login operation required by the HTTP handlers.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// UserHandler handles HTTP requests for users and login.
type UserHandler struct {
	Service UserService
	Auth    AuthService
}

// stringList accepts either a single JSON string or an array of strings,
// normalizing the scalar form clients send for a single reference.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = stringList(many)
	return nil
}

// userRequest is the JSON payload for creating or updating a user.
type userRequest struct {
	Name        string     `json:"name"`
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	UserTypeID  int        `json:"userType"`
	ClientIDs   stringList `json:"clientName"`
	FileTypeIDs []int      `json:"fileType"`
}

func (req userRequest) toInput() service.UserInput {
	return service.UserInput{
		Name:        req.Name,
		Username:    req.Username,
		Password:    req.Password,
		UserTypeID:  req.UserTypeID,
		ClientIDs:   req.ClientIDs,
		FileTypeIDs: req.FileTypeIDs,
	}
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	created, err := h.Service.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User added successfully",
		"userId":  created.ID,
	})
}

// GetAll handles GET /api/users, returning users with references expanded.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAllResolved(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.ResolvedUser{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Update handles PUT /api/users/{id}. A request without a password keeps
// the stored credential.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    updated,
	})
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// Login handles POST /api/login, returning a bearer token on success.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}
