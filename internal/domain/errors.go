package domain

import "errors"

// Common errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidID      = errors.New("invalid id")
	ErrDuplicate      = errors.New("record already exists")
	ErrForbidden      = errors.New("access forbidden: you don't own this resource")
	ErrDuplicateEmail = errors.New("email already registered")
)
