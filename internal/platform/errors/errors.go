package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNotConfigured       = errors.New("not configured")
	ErrNoNotes             = errors.New("no matching notes in period")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
)
