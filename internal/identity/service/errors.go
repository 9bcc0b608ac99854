package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors crossing the service boundary. The HTTP layer maps each of
// these onto a status code and message; anything else that escapes is
// treated as an internal failure and never shown to the caller.
var (
	// Conflicts (409). Email takes precedence when both collide.
	ErrEmailTaken    = errors.New("email is already registered")
	ErrUsernameTaken = errors.New("username is already taken")

	// Unauthorized (401). ErrInvalidCredentials deliberately covers both
	// "no such account" and "wrong password" so callers cannot probe which
	// identifiers exist. ErrInvalidToken likewise covers tampered, expired
	// and malformed tokens.
	ErrInvalidCredentials = errors.New("invalid username, email, or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ValidationError reports malformed or missing request fields, one message
// per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// AsValidation unwraps a *ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
