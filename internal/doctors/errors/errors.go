package errors

import "errors"

var (
	ErrNotFound  = errors.New("doctor not found")
	ErrInvalidID = errors.New("invalid doctor id")
)
