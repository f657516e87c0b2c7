package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clientvault/clientvault/internal/models"
)

// ActivityService defines the session-log operations required by the
// HTTP handlers.
type ActivityService interface {
	LogLogin(ctx context.Context, userName string) (*models.Activity, error)
	LogDownload(ctx context.Context, userName, clientName, fileName string) (*models.Activity, error)
	ListAll(ctx context.Context) ([]models.Activity, error)
	ListForUser(ctx context.Context, userName string) (*models.Activity, error)
}

// ActivityHandler handles HTTP requests for the activity log.
type ActivityHandler struct {
	Service ActivityService
}

// LogLogin handles POST /api/log/login. Logging a login twice for the same
// user returns the same record both times.
func (h *ActivityHandler) LogLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"userName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	activity, err := h.Service.LogLogin(r.Context(), req.UserName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Login activity logged",
		"activity": activity,
	})
}

// LogDownload handles POST /api/log/download.
func (h *ActivityHandler) LogDownload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName   string `json:"userName"`
		ClientName string `json:"clientName"`
		FileName   string `json:"fileName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	activity, err := h.Service.LogDownload(r.Context(), req.UserName, req.ClientName, req.FileName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Download activity logged",
		"activity": activity,
	})
}

// GetAll handles GET /api/all, the admin view over every session record.
func (h *ActivityHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Service.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

// GetForUser handles GET /api/user/{userName}.
func (h *ActivityHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Service.ListForUser(r.Context(), chi.URLParam(r, "userName"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
