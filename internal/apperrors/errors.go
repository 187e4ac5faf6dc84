package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (non-positive amounts, overpayment, malformed fields).
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates the operation is not permitted given the current
// state of the resource (e.g. paying a cancelled debt, reversing a
// non-payment ledger entry).
var ErrInvalidState = errors.New("operation not permitted in current state")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates a persistence or infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish code and a human readable message alongside
// the wrapped cause. Repositories use it to annotate infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	// Bare AppErrors count as internal failures so errors.Is still works.
	return ErrInternal
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
