package service

import (
	"errors"
	"fmt"
)

// Sentinel errors the handlers map onto HTTP statuses.
var (
	ErrCardNotFound       = errors.New("card not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a request field that failed validation.
// Handlers render it as a 422 problem response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
