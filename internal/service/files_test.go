package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientvault/clientvault/internal/models"
	"github.com/clientvault/clientvault/internal/storage"
)

// memFileRepo is an in-memory FileMetadataRepository.
type memFileRepo struct {
	files     map[string]*models.File // by id
	createErr error
	nextID    int
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{files: map[string]*models.File{}}
}

func (m *memFileRepo) Create(ctx context.Context, f models.File) (*models.File, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	f.ID = "f" + strconv.Itoa(m.nextID)
	m.files[f.ID] = &f
	return &f, nil
}

func (m *memFileRepo) GetAll(ctx context.Context) ([]models.File, error) {
	var out []models.File
	for _, f := range m.files {
		out = append(out, *f)
	}
	return out, nil
}

func (m *memFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	if f, ok := m.files[id]; ok {
		return f, nil
	}
	return nil, models.ErrNotFound
}

func (m *memFileRepo) GetByFileName(ctx context.Context, fileName string) (*models.File, error) {
	for _, f := range m.files {
		if f.FileName == fileName {
			return f, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memFileRepo) Update(ctx context.Context, f models.File) (*models.File, error) {
	if _, ok := m.files[f.ID]; !ok {
		return nil, models.ErrNotFound
	}
	m.files[f.ID] = &f
	return &f, nil
}

func (m *memFileRepo) DeleteByFileName(ctx context.Context, fileName string) error {
	for id, f := range m.files {
		if f.FileName == fileName {
			delete(m.files, id)
		}
	}
	return nil
}

func newFileService(t *testing.T) (*FileService, *memFileRepo, *storage.DiskStore) {
	t.Helper()
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	repo := newMemFileRepo()
	return NewFileService(repo, store, testResolver()), repo, store
}

func uploadInput() FileUploadInput {
	return FileUploadInput{ClientID: "c1", UserTypeID: 1, FileTypeIDs: []int{1}}
}

func TestFileUploadDownload_RoundTrip(t *testing.T) {
	svc, _, _ := newFileService(t)

	content := []byte("%PDF-1.4 round trip body")
	created, err := svc.Upload(context.Background(), bytes.NewReader(content), "doc.pdf", "application/pdf", uploadInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	meta, rc, err := svc.Download(context.Background(), created.ID)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got, "downloaded bytes must match the upload byte-for-byte")
	assert.Equal(t, created.FileName, meta.FileName)
}

func TestFileUpload_Validation(t *testing.T) {
	svc, repo, _ := newFileService(t)

	cases := []struct {
		name  string
		in    FileUploadInput
		field string
	}{
		{"missing client", FileUploadInput{UserTypeID: 1, FileTypeIDs: []int{1}}, "clientName"},
		{"missing user type", FileUploadInput{ClientID: "c1", FileTypeIDs: []int{1}}, "userType"},
		{"missing file types", FileUploadInput{ClientID: "c1", UserTypeID: 1}, "fileType"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), bytes.NewReader([]byte("x")), "doc.pdf", "application/pdf", tc.in)
			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Empty(t, repo.files, "nothing must be persisted on validation failure")
		})
	}
}

func TestFileUpload_RejectsDisallowedType(t *testing.T) {
	svc, _, _ := newFileService(t)

	_, err := svc.Upload(context.Background(), bytes.NewReader([]byte("x")), "tool.exe", "application/octet-stream", uploadInput())
	assert.ErrorIs(t, err, models.ErrUnsupportedMediaType)
}

func TestFileUpload_MetadataFailureRemovesBytes(t *testing.T) {
	svc, repo, store := newFileService(t)
	repo.createErr = errors.New("insert failed")

	_, err := svc.Upload(context.Background(), bytes.NewReader([]byte("x")), "doc.pdf", "application/pdf", uploadInput())
	require.Error(t, err)
	assert.Empty(t, repo.files)

	// The just-written file must not be left behind without metadata.
	names, err := filepath.Glob(filepath.Join(store.Dir(), "*"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileDelete_ThenDownloadIsNotFound(t *testing.T) {
	svc, _, _ := newFileService(t)

	created, err := svc.Upload(context.Background(), bytes.NewReader([]byte("content")), "doc.pdf", "application/pdf", uploadInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.FileName))

	_, _, err = svc.Download(context.Background(), created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFileDelete_UnknownName(t *testing.T) {
	svc, _, _ := newFileService(t)

	err := svc.Delete(context.Background(), "never-stored.pdf")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFileDelete_RetryAfterMissingDiskFile(t *testing.T) {
	svc, repo, store := newFileService(t)

	created, err := svc.Upload(context.Background(), bytes.NewReader([]byte("content")), "doc.pdf", "application/pdf", uploadInput())
	require.NoError(t, err)

	// Simulate a partial prior failure: disk file gone, metadata present.
	require.NoError(t, store.Remove(created.FileName))
	require.NotEmpty(t, repo.files)

	// The retried delete must still clear the metadata.
	require.NoError(t, svc.Delete(context.Background(), created.FileName))
	assert.Empty(t, repo.files)
}
