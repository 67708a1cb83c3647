package region

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("region not found")
)
