package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrValidation            = errors.New("draft validation failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
