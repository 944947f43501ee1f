package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrMissingField          = errors.New("required field missing from provider payload")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
