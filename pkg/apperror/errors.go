package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its HTTP mapping.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindPaymentMismatch Kind = "payment_mismatch"
	KindAlreadyExists   Kind = "already_exists"
	KindValidation      Kind = "validation"
	KindUnauthorized    Kind = "unauthorized"
	KindInternal        Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrUnauthorized       = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrInternalServer     = &AppError{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "Internal server error"}
)

// NewNotFoundError creates a not found error naming the resource and its id
func NewNotFoundError(resource string, id fmt.Stringer) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s with id '%s' does not exist", resource, id),
	}
}

// NewInvalidStateError creates an error for an operation that is illegal in
// the entity's current lifecycle state
func NewInvalidStateError(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindInvalidState,
		Code:    http.StatusConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewPaymentMismatchError creates an error for a payment that does not
// exactly match the receipt total
func NewPaymentMismatchError(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindPaymentMismatch,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewAlreadyExistsError creates a conflict error for a duplicate-named entity
func NewAlreadyExistsError(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindAlreadyExists,
		Code:    http.StatusConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewValidationError creates a bad request error for invalid caller input
func NewValidationError(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsKind checks whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
