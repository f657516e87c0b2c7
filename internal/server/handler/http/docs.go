package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clientvault/clientvault/internal/models"
)

// DocService defines the transfer-gateway operations for company documents.
type DocService interface {
	Upload(ctx context.Context, content io.Reader, originalName, contentType, clientID string) (*models.CompanyDoc, error)
	ListResolved(ctx context.Context) ([]models.ResolvedDoc, error)
	UpdateMetadata(ctx context.Context, id, clientID string) (*models.CompanyDoc, error)
	Download(ctx context.Context, id string) (*models.CompanyDoc, io.ReadSeekCloser, error)
	Delete(ctx context.Context, fileName string) error
}

// DocHandler handles HTTP requests for company documents.
type DocHandler struct {
	Service DocService
}

// Upload handles POST /api/docupload: multipart form with the file under
// "file" and a clientName field.
func (h *DocHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadRequest)
	if err := r.ParseMultipartForm(maxUploadRequest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, models.ErrPayloadTooLarge)
			return
		}
		writeBadRequest(w, "no file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	created, err := h.Service.Upload(r.Context(), file, header.Filename, header.Header.Get("Content-Type"), r.FormValue("clientName"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "File uploaded successfully",
		"file":    created,
	})
}

// GetAll handles GET /api/docfiles, returning metadata with the client
// reference expanded.
func (h *DocHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Service.ListResolved(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []models.ResolvedDoc{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// Update handles PUT /api/docfiles/{id}, changing the client reference.
func (h *DocHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"clientName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	updated, err := h.Service.UpdateMetadata(r.Context(), chi.URLParam(r, "id"), req.ClientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/docdeletefile/{fileName}.
func (h *DocHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "fileName")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

// Download handles GET /api/docdownload/{id}.
func (h *DocHandler) Download(w http.ResponseWriter, r *http.Request) {
	d, rc, err := h.Service.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	serveFile(w, r, d.FileName, d.UploadDate, rc)
}
