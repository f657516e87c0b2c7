// Package service provides the business logic for every entity kind,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"

	"github.com/clientvault/clientvault/internal/models"
)

// ClientGetter looks up one client by identifier.
type ClientGetter interface {
	GetByID(ctx context.Context, id string) (*models.Client, error)
}

// UserTypeGetter looks up one user type by identifier.
type UserTypeGetter interface {
	GetByID(ctx context.Context, id int) (*models.UserType, error)
}

// FileTypeGetter looks up one file type by identifier.
type FileTypeGetter interface {
	GetByID(ctx context.Context, id int) (*models.FileType, error)
}

// Resolver expands stored foreign-key identifiers into the referenced
// entity's current field values, one level deep. A reference whose target
// was deleted resolves to nil; resolution never fails the read for that.
type Resolver struct {
	clients   ClientGetter
	userTypes UserTypeGetter
	fileTypes FileTypeGetter
}

// NewResolver constructs a Resolver over the three reference lookups.
func NewResolver(clients ClientGetter, userTypes UserTypeGetter, fileTypes FileTypeGetter) *Resolver {
	return &Resolver{clients: clients, userTypes: userTypes, fileTypes: fileTypes}
}

// User expands a user's client, user-type, and file-type references.
func (r *Resolver) User(ctx context.Context, u models.User) (*models.ResolvedUser, error) {
	resolved := models.ResolvedUser{User: u, Clients: []*models.Client{}, FileTypes: []*models.FileType{}}

	ut, err := r.userType(ctx, u.UserTypeID)
	if err != nil {
		return nil, err
	}
	resolved.UserType = ut

	for _, id := range u.ClientIDs {
		c, err := r.client(ctx, id)
		if err != nil {
			return nil, err
		}
		resolved.Clients = append(resolved.Clients, c)
	}
	for _, id := range u.FileTypeIDs {
		ft, err := r.fileType(ctx, id)
		if err != nil {
			return nil, err
		}
		resolved.FileTypes = append(resolved.FileTypes, ft)
	}
	return &resolved, nil
}

// File expands a file's client, user-type, and file-type references at once.
func (r *Resolver) File(ctx context.Context, f models.File) (*models.ResolvedFile, error) {
	resolved := models.ResolvedFile{File: f, FileTypes: []*models.FileType{}}

	c, err := r.client(ctx, f.ClientID)
	if err != nil {
		return nil, err
	}
	resolved.Client = c

	ut, err := r.userType(ctx, f.UserTypeID)
	if err != nil {
		return nil, err
	}
	resolved.UserType = ut

	for _, id := range f.FileTypeIDs {
		ft, err := r.fileType(ctx, id)
		if err != nil {
			return nil, err
		}
		resolved.FileTypes = append(resolved.FileTypes, ft)
	}
	return &resolved, nil
}

// Doc expands a company document's client reference.
func (r *Resolver) Doc(ctx context.Context, d models.CompanyDoc) (*models.ResolvedDoc, error) {
	c, err := r.client(ctx, d.ClientID)
	if err != nil {
		return nil, err
	}
	return &models.ResolvedDoc{CompanyDoc: d, Client: c}, nil
}

func (r *Resolver) client(ctx context.Context, id string) (*models.Client, error) {
	c, err := r.clients.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

func (r *Resolver) userType(ctx context.Context, id int) (*models.UserType, error) {
	ut, err := r.userTypes.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return ut, err
}

func (r *Resolver) fileType(ctx context.Context, id int) (*models.FileType, error) {
	ft, err := r.fileTypes.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	return ft, err
}
