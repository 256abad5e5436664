package errors

import (
	"net/http"

	"checker/internal/errors"
)

// AppError is implemented by errors that know how to present themselves over HTTP.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string
}

// BaseError is the common AppError implementation. Predefined values are
// compared with errors.Is, so wrapping keeps their identity.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// Is matches any BaseError carrying the same error code, so values produced by
// WithDetails still satisfy errors.Is against the predefined sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WithDetails returns a copy of the error carrying details.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Credential hashing errors
var (
	ErrInvalidConfiguration = NewBaseError(
		http.StatusInternalServerError,
		"INVALID_CONFIGURATION",
		"invalid password hasher configuration",
		"",
	)

	ErrInvalidCredential = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIAL",
		"password must not be blank",
		"",
	)

	ErrInvalidArgument = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ARGUMENT",
		"invalid argument",
		"",
	)

	ErrResourceNotFound = NewBaseError(
		http.StatusInternalServerError,
		"RESOURCE_NOT_FOUND",
		"salt store not found",
		"",
	)

	ErrSaltIndexOutOfRange = NewBaseError(
		http.StatusInternalServerError,
		"SALT_INDEX_OUT_OF_RANGE",
		"salt position is beyond the salt store",
		"",
	)
)

// User and authentication errors
var (
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"email is already registered",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"failed to create user",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"email or password is incorrect",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)
)

// General errors
var (
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrUpstreamUnavailable = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_UNAVAILABLE",
		"routing provider is unavailable",
		"",
	)

	ErrInternalError = NewBaseError(
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

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error { return e.err }

func (e *DatabaseExecuteError) HTTPCode() int { return http.StatusInternalServerError }

func (e *DatabaseExecuteError) ErrorCode() string { return "DATABASE_EXECUTE_FAILED" }

func (e *DatabaseExecuteError) Message() string { return "database execution failed" }

func (e *DatabaseExecuteError) Details() string { return e.details }
