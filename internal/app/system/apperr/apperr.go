// Package apperr defines the error taxonomy shared by stores, system
// services and the HTTP layer. Stores declare their own sentinels wrapping
// one of these kinds, so handlers can map any of them with errors.Is.
package apperr

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalid         = errors.New("invalid input")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns an error whose message is msg and which matches kind under
// errors.Is. Use it for sentinels whose text is shown to clients.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
