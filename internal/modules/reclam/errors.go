package reclam

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("reclamation not found")
	ErrRegionNotFound  = errors.New("region not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNotPending      = errors.New("reclamation is no longer pending")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrEmptyQuery      = errors.New("search query is required")
	ErrForbidden       = errors.New("forbidden")
)

// FieldError reports one rejected input field. It matches ErrValidation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

func fieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
