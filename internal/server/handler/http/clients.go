package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clientvault/clientvault/internal/models"
)

// ClientService defines the interface for client operations required by
// the HTTP handlers.
type ClientService interface {
	Create(ctx context.Context, c models.Client) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, c models.Client) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

// ClientHandler handles HTTP requests for tenant companies.
type ClientHandler struct {
	Service ClientService
}

// Create handles POST /api/clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	created, err := h.Service.Create(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Client added successfully",
		"clientId": created.ID,
		"client":   created,
	})
}

// GetAll handles GET /api/clients.
func (h *ClientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// Update handles PUT /api/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}
	c.ID = chi.URLParam(r, "id")

	updated, err := h.Service.Update(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Client updated successfully",
		"client":  updated,
	})
}

// Delete handles DELETE /api/clients/{id}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}
