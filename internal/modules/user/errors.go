package user

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("user not found")
	ErrRegionNotFound     = errors.New("region not found")
	ErrForbidden          = errors.New("forbidden")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
