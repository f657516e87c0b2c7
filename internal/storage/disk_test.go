package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientvault/clientvault/internal/models"
)

func TestSaveAndOpen_RoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("%PDF-1.4 test content")
	name, err := store.Save(bytes.NewReader(content), "doc.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_doc.pdf"), "stored name should keep the sanitized original: %s", name)

	rc, err := store.Open(name)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSave_RejectsOversizedContent(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	big := bytes.NewReader(make([]byte, MaxFileSize+1))
	_, err = store.Save(big, "huge.pdf")
	assert.ErrorIs(t, err, models.ErrPayloadTooLarge)
}

func TestSave_UniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(strings.NewReader("a"), "doc.pdf")
	require.NoError(t, err)
	second, err := store.Save(strings.NewReader("b"), "doc.pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOpen_Missing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open("nope.pdf")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemove_MissingFileIsNotAnError(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	// A delete retried after a partial prior failure must still succeed.
	assert.NoError(t, store.Remove("already-gone.pdf"))
}

func TestCheckType(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name        string
		fileName    string
		contentType string
		wantErr     error
	}{
		{"pdf allowed", "report.pdf", "application/pdf", nil},
		{"jpeg allowed", "photo.JPG", "image/jpeg", nil},
		{"docx allowed", "contract.docx", "", nil},
		{"psd allowed", "design.psd", "application/octet-stream", nil},
		{"executable rejected", "malware.exe", "application/octet-stream", models.ErrUnsupportedMediaType},
		{"script rejected", "run.sh", "text/x-shellscript", models.ErrUnsupportedMediaType},
		{"mime mismatch rejected", "doc.pdf", "text/html", models.ErrUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.CheckType(tt.fileName, tt.contentType)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"a.txt\"\r\nX-Admin: true", "a.txtX-Admin true"},
		{"", "download"},
		{"   ", "download"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
