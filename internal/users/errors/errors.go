package errors

import "errors"

var (
	ErrNotFound           = errors.New("patient not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidID          = errors.New("invalid patient id")
)
