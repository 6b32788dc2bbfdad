// Package apperror defines the error kinds the rest of the application
// returns and the HTTP status each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	UnknownError ErrorType = iota
	// ValidationError - missing or empty required field, bad credentials
	ValidationError
	// ConflictError - resource already exists (duplicate username)
	ConflictError
	// NotFoundError - the requested row does not exist
	NotFoundError
	// ForbiddenError - authenticated, but not the author
	ForbiddenError
	// AuthError - not authenticated
	AuthError
	// DatabaseError - a storage failure, not user-facing
	DatabaseError
	// InternalError - anything else that should never happen
	InternalError
)

// AppError carries a user-facing message and an optional underlying error.
type AppError struct {
	Type    ErrorType
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

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case NotFoundError:
		return http.StatusNotFound
	case ForbiddenError:
		return http.StatusForbidden
	case AuthError:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

func NewValidation(message string) *AppError {
	return New(ValidationError, message, nil)
}

func NewConflict(message string) *AppError {
	return New(ConflictError, message, nil)
}

func NewNotFound(message string) *AppError {
	return New(NotFoundError, message, nil)
}

func NewForbidden(message string) *AppError {
	return New(ForbiddenError, message, nil)
}

func NewAuth(message string) *AppError {
	return New(AuthError, message, nil)
}

func NewDatabase(message string, underlying error) *AppError {
	return New(DatabaseError, message, underlying)
}

func is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

func IsValidation(err error) bool { return is(err, ValidationError) }
func IsConflict(err error) bool   { return is(err, ConflictError) }
func IsNotFound(err error) bool   { return is(err, NotFoundError) }
func IsForbidden(err error) bool  { return is(err, ForbiddenError) }
func IsAuth(err error) bool       { return is(err, AuthError) }

// Message returns the user-facing message of an AppError, or a generic
// fallback for errors that are not AppErrors.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
