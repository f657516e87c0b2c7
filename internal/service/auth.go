package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/clientvault/clientvault/internal/auth"
	"github.com/clientvault/clientvault/internal/models"
)

// TokenIssuer signs claims into a bearer token.
type TokenIssuer interface {
	Issue(claims auth.Claims) (string, error)
}

// AuthService validates credentials and issues bearer tokens carrying a
// denormalized snapshot of the user's identity and permissions.
type AuthService struct {
	users    UserRepository
	resolver *Resolver
	tokens   TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserRepository, resolver *Resolver, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, resolver: resolver, tokens: tokens}
}

// Login verifies the username and password and returns a signed token.
// Any mismatch, including an unknown username, is ErrInvalidCredentials;
// the caller cannot tell which half failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", models.ErrInvalidCredentials
	}

	resolved, err := s.resolver.User(ctx, *u)
	if err != nil {
		return "", err
	}

	claims := auth.Claims{
		UserID:      u.ID,
		Name:        u.Name,
		Username:    u.Username,
		ClientNames: []string{},
		FileTypes:   []string{},
	}
	if resolved.UserType != nil {
		claims.UserType = resolved.UserType.UserType
	}
	for _, c := range resolved.Clients {
		if c != nil {
			claims.ClientNames = append(claims.ClientNames, c.ClientName)
		}
	}
	for _, ft := range resolved.FileTypes {
		if ft != nil {
			claims.FileTypes = append(claims.FileTypes, ft.FileType)
		}
	}

	return s.tokens.Issue(claims)
}
