package services

import "errors"

// Sentinel errors let handlers map service failures onto status codes
// without string matching.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrForbidden = errors.New("forbidden")
	ErrInvalid   = errors.New("invalid input")
)
