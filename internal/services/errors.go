package services

import (
	"errors"
	"fmt"
)

// Error kinds mapped to HTTP statuses at the handler boundary.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// domainError carries a user-facing message while unwrapping to one of the
// sentinel kinds so handlers can classify with errors.Is.
type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

func validationError(format string, args ...interface{}) error {
	return &domainError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func unauthorizedError(format string, args ...interface{}) error {
	return &domainError{kind: ErrUnauthorized, msg: fmt.Sprintf(format, args...)}
}
