package common

import (
	"errors"
	"fmt"

	"booking-system/airline/internal/constants"
)

type ErrorCategory string

const (
	CategoryValidation      ErrorCategory = "validation_error"
	CategoryUnauthenticated ErrorCategory = "unauthenticated"
	CategoryForbidden       ErrorCategory = "forbidden"
	CategoryConflict        ErrorCategory = "conflict"
	CategoryNotFound        ErrorCategory = "not_found"
	CategoryServer          ErrorCategory = "server_error"
)

// AppError is the error every service returns to the transport layer.
// Fields carries per-field messages for validation errors. Retryable marks
// conflicts caused by lock waits rather than by domain state.
type AppError struct {
	Category  ErrorCategory
	Message   string
	Fields    map[string]string
	Retryable bool
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(fields map[string]string) *AppError {
	return &AppError{Category: CategoryValidation, Message: constants.MsgValidationFailed, Fields: fields}
}

func NewBadRequest(message string) *AppError {
	return &AppError{Category: CategoryValidation, Message: message}
}

func NewUnauthenticated(message string) *AppError {
	return &AppError{Category: CategoryUnauthenticated, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Category: CategoryForbidden, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Category: CategoryConflict, Message: message}
}

func NewRetryableConflict(message string, err error) *AppError {
	return &AppError{Category: CategoryConflict, Message: message, Retryable: true, Err: err}
}

func NewNotFound(message string) *AppError {
	return &AppError{Category: CategoryNotFound, Message: message}
}

func NewServerError(err error) *AppError {
	return &AppError{Category: CategoryServer, Message: constants.MsgServerError, Err: err}
}

// AsAppError returns err as an *AppError, wrapping anything else as a server error.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewServerError(err)
}

func CategoryOf(err error) ErrorCategory {
	if err == nil {
		return ""
	}
	return AsAppError(err).Category
}

func IsCategory(err error, category ErrorCategory) bool {
	return err != nil && CategoryOf(err) == category
}
