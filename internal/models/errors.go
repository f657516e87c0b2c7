package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories, services, and handlers.
var (
	// ErrNotFound indicates that no document matches the identifier or filter.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates a failed username/password match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateLogin indicates a username uniqueness violation.
	ErrDuplicateLogin = errors.New("username already taken")
	// ErrUnauthorized indicates a missing or unverifiable bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a valid token lacking the required user type.
	ErrForbidden = errors.New("forbidden")
	// ErrPayloadTooLarge indicates an upload above the size cap.
	ErrPayloadTooLarge = errors.New("file exceeds the maximum allowed size")
	// ErrUnsupportedMediaType indicates an upload with a disallowed format.
	ErrUnsupportedMediaType = errors.New("file format is not allowed")
)

// ValidationError reports a missing or empty required field. It is checked
// before any persistence attempt, so a ValidationError guarantees nothing
// was written.
type ValidationError struct {
	// Field is the name of the offending field.
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
