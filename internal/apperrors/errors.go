package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger-specific transfer errors. These are the only operations that throw;
// everything else in the engine fails soft (no-op or nil return).
var (
	// ErrInvalidAmount indicates a transfer amount that is zero or negative.
	ErrInvalidAmount = fmt.Errorf("%w: transfer amount must be positive", ErrValidation)
	// ErrSameAccountTransfer indicates a transfer whose source and destination match.
	ErrSameAccountTransfer = fmt.Errorf("%w: cannot transfer to same account", ErrValidation)
	// ErrInsufficientBalance indicates the source account cannot cover the transfer.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// AppError wraps an underlying error with an HTTP-ish status code and a message.
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
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
