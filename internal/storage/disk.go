// Package storage implements the on-disk half of the file transfer gateway.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/clientvault/clientvault/internal/models"
)

// MaxFileSize is the upload cap.
const MaxFileSize = 5 << 20 // 5 MiB

// allowedExtensions mirrors the accepted upload formats: images, PDF,
// documents, and design files.
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".psd":  true,
}

// allowedMIMEPrefixes matches the declared content types accepted for upload.
var allowedMIMEPrefixes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/vnd.adobe.photoshop",
	"application/octet-stream",
}

// DiskStore persists uploaded bytes under a single directory, one file per
// stored name. Stored names are generated, so callers must keep the returned
// name to address the file later.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *DiskStore) Dir() string {
	return s.dir
}

// CheckType validates the original filename extension and the declared
// content type against the allowlist. An empty contentType skips the MIME
// half of the check.
func (s *DiskStore) CheckType(originalName, contentType string) error {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return models.ErrUnsupportedMediaType
	}
	if contentType == "" {
		return nil
	}
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return nil
		}
	}
	return models.ErrUnsupportedMediaType
}

// Save writes the reader's content to a new file and returns the stored
// name: a unix-milliseconds prefix, a ksuid for uniqueness, and the
// sanitized original name. Content above MaxFileSize is rejected with
// ErrPayloadTooLarge and the partial file is removed.
func (s *DiskStore) Save(r io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), ksuid.New().String(), SanitizeFileName(originalName))
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(r, MaxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(path)
		return "", models.ErrPayloadTooLarge
	}

	return name, nil
}

// Open returns a reader over the stored file. A missing file is ErrNotFound.
func (s *DiskStore) Open(name string) (io.ReadSeekCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, SanitizeFileName(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// Exists reports whether the stored file is present on disk.
func (s *DiskStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, SanitizeFileName(name)))
	return err == nil
}

// Remove unlinks the stored file. An already-missing file counts as success
// so a delete retried after a partial prior failure can still finish; any
// other unlink failure is returned.
func (s *DiskStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, SanitizeFileName(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// SanitizeFileName strips path components and characters that could break
// out of the storage directory or corrupt response headers.
func SanitizeFileName(name string) string {
	clean := strings.TrimSpace(name)
	clean = strings.ReplaceAll(clean, "\\", "/")
	clean = filepath.Base(clean)
	for _, ch := range []string{"\r", "\n", "\"", "..", ":"} {
		clean = strings.ReplaceAll(clean, ch, "")
	}
	if clean == "" || clean == "." || clean == "/" {
		return "download"
	}
	return clean
}
