package models

import "errors"

// Sentinel errors shared by services, stores and the HTTP layer. Wrap them with
// fmt.Errorf("%w: ...") and test with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)
