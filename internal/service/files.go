package service

import (
	"context"
	"io"
	"strings"

	"github.com/clientvault/clientvault/internal/models"
)

// FileMetadataRepository defines the persistence operations for file
// metadata records.
type FileMetadataRepository interface {
	Create(ctx context.Context, f models.File) (*models.File, error)
	GetAll(ctx context.Context) ([]models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
	GetByFileName(ctx context.Context, fileName string) (*models.File, error)
	Update(ctx context.Context, f models.File) (*models.File, error)
	DeleteByFileName(ctx context.Context, fileName string) error
}

// BlobStore is the on-disk half of the transfer gateway.
type BlobStore interface {
	CheckType(originalName, contentType string) error
	Save(r io.Reader, originalName string) (string, error)
	Open(name string) (io.ReadSeekCloser, error)
	Exists(name string) bool
	Remove(name string) error
}

// FileUploadInput carries the metadata fields accompanying an upload.
type FileUploadInput struct {
	ClientID    string
	UserTypeID  int
	FileTypeIDs []int
}

// FileService is the transfer gateway for generic uploaded files: bytes on
// disk, provenance metadata in the store.
type FileService struct {
	repo     FileMetadataRepository
	store    BlobStore
	resolver *Resolver
}

// NewFileService constructs a FileService.
func NewFileService(repo FileMetadataRepository, store BlobStore, resolver *Resolver) *FileService {
	return &FileService{repo: repo, store: store, resolver: resolver}
}

// Upload validates the metadata, checks the file's declared type, persists
// the bytes under a generated unique name, and records the metadata. A
// metadata failure removes the just-written file so no unreferenced bytes
// are left behind.
func (s *FileService) Upload(ctx context.Context, content io.Reader, originalName, contentType string, in FileUploadInput) (*models.File, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, &models.ValidationError{Field: "clientName"}
	}
	if in.UserTypeID <= 0 {
		return nil, &models.ValidationError{Field: "userType"}
	}
	if len(in.FileTypeIDs) == 0 {
		return nil, &models.ValidationError{Field: "fileType"}
	}
	if err := s.store.CheckType(originalName, contentType); err != nil {
		return nil, err
	}

	storedName, err := s.store.Save(content, originalName)
	if err != nil {
		return nil, err
	}

	f, err := s.repo.Create(ctx, models.File{
		FileName:    storedName,
		ClientID:    in.ClientID,
		UserTypeID:  in.UserTypeID,
		FileTypeIDs: in.FileTypeIDs,
	})
	if err != nil {
		_ = s.store.Remove(storedName)
		return nil, err
	}
	return f, nil
}

// ListResolved returns every file record with references expanded.
func (s *FileService) ListResolved(ctx context.Context) ([]models.ResolvedFile, error) {
	files, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resolved := make([]models.ResolvedFile, 0, len(files))
	for _, f := range files {
		rf, err := s.resolver.File(ctx, f)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *rf)
	}
	return resolved, nil
}

// UpdateMetadata replaces a file's reference fields.
func (s *FileService) UpdateMetadata(ctx context.Context, id string, in FileUploadInput) (*models.File, error) {
	if strings.TrimSpace(in.ClientID) == "" {
		return nil, &models.ValidationError{Field: "clientName"}
	}
	if in.UserTypeID <= 0 {
		return nil, &models.ValidationError{Field: "userType"}
	}
	return s.repo.Update(ctx, models.File{
		ID:          id,
		ClientID:    in.ClientID,
		UserTypeID:  in.UserTypeID,
		FileTypeIDs: in.FileTypeIDs,
	})
}

// Download resolves the metadata by identifier and opens the backing file.
// Either half missing is ErrNotFound. The caller closes the reader.
func (s *FileService) Download(ctx context.Context, id string) (*models.File, io.ReadSeekCloser, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(f.FileName)
	if err != nil {
		return nil, nil, err
	}
	return f, rc, nil
}

// Delete removes the on-disk file and then the metadata row, in that order.
// An unlink failure leaves the metadata in place and is reported; a missing
// disk file is tolerated so a retried delete can finish the metadata half.
func (s *FileService) Delete(ctx context.Context, fileName string) error {
	f, err := s.repo.GetByFileName(ctx, fileName)
	if err != nil {
		return err
	}
	if err := s.store.Remove(f.FileName); err != nil {
		return err
	}
	return s.repo.DeleteByFileName(ctx, f.FileName)
}
