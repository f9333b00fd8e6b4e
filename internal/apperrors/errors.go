package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected failure that is not the caller's fault.
var ErrInternal = errors.New("internal error")

// Reserve ledger business-rule failures. Messages are stable; callers branch on them with errors.Is.
var (
	ErrInsufficientBalance     = errors.New("insufficient reserve balance")
	ErrDailyLimitExceeded      = errors.New("daily limit exceeded")
	ErrReserveNotFound         = errors.New("currency reserve not found")
	ErrReserveInactive         = errors.New("currency reserve is inactive")
	ErrInvalidConfiguration    = errors.New("invalid reserve configuration")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInvalidRate             = errors.New("exchange rate is not usable")
	ErrUnsupportedMovementType = errors.New("movement type not supported for manual movements")
	ErrBusy                    = errors.New("reserve is busy, try again later")
	ErrAlreadyReversed         = errors.New("exchange transaction already reversed")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Repositories use it for storage failures that are not business-rule errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
