package service

import (
	"context"
	"io"
	"strings"

	"github.com/clientvault/clientvault/internal/models"
)

// DocMetadataRepository defines the persistence operations for company
// document metadata records.
type DocMetadataRepository interface {
	Create(ctx context.Context, d models.CompanyDoc) (*models.CompanyDoc, error)
	GetAll(ctx context.Context) ([]models.CompanyDoc, error)
	GetByID(ctx context.Context, id string) (*models.CompanyDoc, error)
	GetByFileName(ctx context.Context, fileName string) (*models.CompanyDoc, error)
	Update(ctx context.Context, d models.CompanyDoc) (*models.CompanyDoc, error)
	DeleteByFileName(ctx context.Context, fileName string) error
}

// DocService is the transfer gateway for company documents. It mirrors
// FileService against its own directory and table; only the client
// reference accompanies a document.
type DocService struct {
	repo     DocMetadataRepository
	store    BlobStore
	resolver *Resolver
}

// NewDocService constructs a DocService.
func NewDocService(repo DocMetadataRepository, store BlobStore, resolver *Resolver) *DocService {
	return &DocService{repo: repo, store: store, resolver: resolver}
}

// Upload stores a company document and records its metadata.
func (s *DocService) Upload(ctx context.Context, content io.Reader, originalName, contentType, clientID string) (*models.CompanyDoc, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, &models.ValidationError{Field: "clientName"}
	}
	if err := s.store.CheckType(originalName, contentType); err != nil {
		return nil, err
	}

	storedName, err := s.store.Save(content, originalName)
	if err != nil {
		return nil, err
	}

	d, err := s.repo.Create(ctx, models.CompanyDoc{FileName: storedName, ClientID: clientID})
	if err != nil {
		_ = s.store.Remove(storedName)
		return nil, err
	}
	return d, nil
}

// ListResolved returns every document record with its client expanded.
func (s *DocService) ListResolved(ctx context.Context) ([]models.ResolvedDoc, error) {
	docs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	resolved := make([]models.ResolvedDoc, 0, len(docs))
	for _, d := range docs {
		rd, err := s.resolver.Doc(ctx, d)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *rd)
	}
	return resolved, nil
}

// UpdateMetadata changes a document's client reference.
func (s *DocService) UpdateMetadata(ctx context.Context, id, clientID string) (*models.CompanyDoc, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, &models.ValidationError{Field: "clientName"}
	}
	return s.repo.Update(ctx, models.CompanyDoc{ID: id, ClientID: clientID})
}

// Download resolves the metadata by identifier and opens the backing file.
func (s *DocService) Download(ctx context.Context, id string) (*models.CompanyDoc, io.ReadSeekCloser, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(d.FileName)
	if err != nil {
		return nil, nil, err
	}
	return d, rc, nil
}

// Delete removes the disk file then the metadata row, with the same
// ordering and retry semantics as FileService.Delete.
func (s *DocService) Delete(ctx context.Context, fileName string) error {
	d, err := s.repo.GetByFileName(ctx, fileName)
	if err != nil {
		return err
	}
	if err := s.store.Remove(d.FileName); err != nil {
		return err
	}
	return s.repo.DeleteByFileName(ctx, d.FileName)
}
