// Package http provides the HTTP handlers and router for the client
// document management API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clientvault/clientvault/internal/models"
	"github.com/clientvault/clientvault/internal/storage"
)

// writeJSON encodes v with the given status. Encoding failures are ignored;
// the status line has already been sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its HTTP status and writes a JSON
// error body. Unknown errors become 500 with the underlying message kept
// in the body for diagnostics.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case models.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnsupportedMediaType):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateLogin):
		status = http.StatusConflict
	case errors.Is(err, models.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeBadRequest rejects a malformed request with the standard error
// envelope. Undecodable bodies and missing multipart files land here.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// serveFile streams stored file content as an attachment download. The
// filename in the header is sanitized so stored names cannot inject
// response headers.
func serveFile(w http.ResponseWriter, r *http.Request, fileName string, modTime time.Time, content io.ReadSeeker) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", storage.SanitizeFileName(fileName)))
	http.ServeContent(w, r, fileName, modTime, content)
}
