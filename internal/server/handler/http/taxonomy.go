package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clientvault/clientvault/internal/models"
)

// UserTypeService defines the interface for user-type taxonomy operations.
type UserTypeService interface {
	Create(ctx context.Context, label string) (*models.UserType, error)
	GetAll(ctx context.Context) ([]models.UserType, error)
	Update(ctx context.Context, id int, label string) (*models.UserType, error)
	Delete(ctx context.Context, id int) error
}

// FileTypeService defines the interface for file-type taxonomy operations.
type FileTypeService interface {
	Create(ctx context.Context, label string) (*models.FileType, error)
	GetAll(ctx context.Context) ([]models.FileType, error)
	Update(ctx context.Context, id int, label string) (*models.FileType, error)
	Delete(ctx context.Context, id int) error
}

// UserTypeHandler handles HTTP requests for the user-type taxonomy.
type UserTypeHandler struct {
	Service UserTypeService
}

// Create handles POST /api/usertypes.
func (h *UserTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserType string `json:"userType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	created, err := h.Service.Create(r.Context(), req.UserType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "User type added successfully",
		"id":       created.ID,
		"userType": created.UserType,
	})
}

// GetAll handles GET /api/usertypes.
func (h *UserTypeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if types == nil {
		types = []models.UserType{}
	}
	writeJSON(w, http.StatusOK, types)
}

// Update handles PUT /api/usertypes/{id}.
func (h *UserTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrNotFound)
		return
	}
	var req struct {
		UserType string `json:"userType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req.UserType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "User type updated successfully",
		"userType": updated,
	})
}

// Delete handles DELETE /api/usertypes/{id}.
func (h *UserTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrNotFound)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User type deleted successfully"})
}

// FileTypeHandler handles HTTP requests for the file-type taxonomy.
type FileTypeHandler struct {
	Service FileTypeService
}

// Create handles POST /api/filetypes.
func (h *FileTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	created, err := h.Service.Create(r.Context(), req.FileType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "File type added successfully",
		"id":       created.ID,
		"fileType": created.FileType,
	})
}

// GetAll handles GET /api/filetypes.
func (h *FileTypeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if types == nil {
		types = []models.FileType{}
	}
	writeJSON(w, http.StatusOK, types)
}

// Update handles PUT /api/filetypes/{id}.
func (h *FileTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrNotFound)
		return
	}
	var req struct {
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	updated, err := h.Service.Update(r.Context(), id, req.FileType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "File type updated successfully",
		"fileType": updated,
	})
}

// Delete handles DELETE /api/filetypes/{id}.
func (h *FileTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrNotFound)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File type deleted successfully"})
}
