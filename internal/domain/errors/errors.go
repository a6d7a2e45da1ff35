package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an AppError into the account service's error taxonomy.
type Kind string

const (
	KindInvalidRequest   Kind = "InvalidRequest"
	KindConflict         Kind = "Conflict"
	KindValidationFailed Kind = "ValidationFailed"
	KindUnauthorized     Kind = "Unauthorized"
	KindNotFound         Kind = "NotFound"
	KindInternal         Kind = "InternalError"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error taxonomy class
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches on the business error code so that copies made by WithDetails
// still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the taxonomy class
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Request errors
	ErrInvalidRequest = NewBaseError(
		KindInvalidRequest,
		http.StatusBadRequest,
		"INVALID_REQUEST",
		"invalid request",
		"",
	)

	// Conflict errors
	ErrEmailExists = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"EMAIL_EXISTS",
		"email exists",
		"",
	)

	ErrUsernameExists = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"USERNAME_EXISTS",
		"username exists",
		"",
	)

	ErrConflict = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)

	// Validation errors raised by storage format rules
	ErrInvalidEmail = NewBaseError(
		KindValidationFailed,
		http.StatusBadRequest,
		"INVALID_EMAIL",
		"invalid email",
		"",
	)

	ErrInvalidUsername = NewBaseError(
		KindValidationFailed,
		http.StatusBadRequest,
		"INVALID_USERNAME",
		"invalid username",
		"",
	)

	// Authorization errors
	ErrUnauthorized = NewBaseError(
		KindUnauthorized,
		http.StatusForbidden,
		"UNAUTHORIZED",
		"not authorized to change this password",
		"",
	)

	// Lookup errors
	ErrCredentialNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"CREDENTIAL_NOT_FOUND",
		"user not found",
		"",
	)

	// Internal errors
	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the underlying driver error to errors.Is/As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the taxonomy class
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// KindOf returns the taxonomy class of the first AppError in err's chain.
// Errors outside the taxonomy are reported as KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}
