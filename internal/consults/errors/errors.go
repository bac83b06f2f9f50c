package errors

import "errors"

var (
	ErrNotFound  = errors.New("consult not found")
	ErrInvalidID = errors.New("invalid consult id")
)
