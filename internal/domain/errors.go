package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAllocationFailure  = errors.New("memory allocation failed")
	ErrUnknownSubjectType = errors.New("unknown subject type")
	ErrInvalidTable       = errors.New("invalid tax table")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
)
