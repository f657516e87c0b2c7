package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clientvault/clientvault/internal/models"
	"github.com/clientvault/clientvault/internal/service"
	"github.com/clientvault/clientvault/internal/storage"
)

// FileService defines the transfer-gateway operations for generic files.
type FileService interface {
	Upload(ctx context.Context, content io.Reader, originalName, contentType string, in service.FileUploadInput) (*models.File, error)
	ListResolved(ctx context.Context) ([]models.ResolvedFile, error)
	UpdateMetadata(ctx context.Context, id string, in service.FileUploadInput) (*models.File, error)
	Download(ctx context.Context, id string) (*models.File, io.ReadSeekCloser, error)
	Delete(ctx context.Context, fileName string) error
}

// FileHandler handles HTTP requests for uploaded files.
type FileHandler struct {
	Service FileService
}

// maxUploadRequest bounds the whole multipart request body: the file cap
// plus headroom for the form fields and part framing.
const maxUploadRequest = storage.MaxFileSize + 1<<20

// parseFileTypeIDs splits the comma-separated fileType form value into
// integer identifiers.
func parseFileTypeIDs(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, &models.ValidationError{Field: "fileType"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Upload handles POST /api/upload: multipart form with the file under
// "file" and clientName/userType/fileType fields.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
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

	userTypeID, _ := strconv.Atoi(r.FormValue("userType"))
	fileTypeIDs, err := parseFileTypeIDs(r.FormValue("fileType"))
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.Service.Upload(r.Context(), file, header.Filename, header.Header.Get("Content-Type"), service.FileUploadInput{
		ClientID:    r.FormValue("clientName"),
		UserTypeID:  userTypeID,
		FileTypeIDs: fileTypeIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "File uploaded successfully",
		"file":    created,
	})
}

// GetAll handles GET /api/files, returning metadata with references expanded.
func (h *FileHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	files, err := h.Service.ListResolved(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if files == nil {
		files = []models.ResolvedFile{}
	}
	writeJSON(w, http.StatusOK, files)
}

// Update handles PUT /api/files/{id}, replacing reference metadata.
func (h *FileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID    string `json:"clientName"`
		UserTypeID  int    `json:"userType"`
		FileTypeIDs []int  `json:"fileType"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request")
		return
	}

	updated, err := h.Service.UpdateMetadata(r.Context(), chi.URLParam(r, "id"), service.FileUploadInput{
		ClientID:    req.ClientID,
		UserTypeID:  req.UserTypeID,
		FileTypeIDs: req.FileTypeIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/deletefile/{fileName}.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "fileName")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

// Download handles GET /api/download/{id}, streaming the raw file with a
// content-disposition header.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	f, rc, err := h.Service.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	serveFile(w, r, f.FileName, f.UploadDate, rc)
}
