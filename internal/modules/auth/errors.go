package auth

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyVerified = errors.New("email already verified")
	ErrMailFailed      = errors.New("failed to send email")
)
