package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clientvault/clientvault/internal/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// adminType is the user-type label granted full privileges.
const adminType = "Admin"

// writeAuthError rejects the request with the same JSON error envelope the
// handlers use, so clients never see a text/plain body.
func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// TokenVerifier validates a bearer token string and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It extracts the token from the Authorization header, verifies its
// signature and expiry, and stores the claims in the request context so
// downstream handlers can identify the caller. Requests without a valid
// token are rejected with 401.
func BearerAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := verifier.Verify(parts[1])
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated callers whose user-type label is not
// Admin. It must run after BearerAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaimsFromContext(r.Context())
		if claims == nil {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if claims.UserType != adminType {
			writeAuthError(w, http.StatusForbidden, "access denied: admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext extracts the verified token claims from the request
// context. Returns nil when the request was not authenticated.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}
