package errors

import (
	"net/http"

	"faceauth/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message written as {"error": message}
	Details() string   // Detailed error information (optional, never sent for 5xx)
}

// BaseError is a basic error structure that implements the AppError interface
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

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
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
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches on the business error code so copies made by WithDetails
// still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

func newError(httpCode int, errorCode, message string) *BaseError {
	return NewBaseError(httpCode, errorCode, message, "")
}

// Predefined errors. Message is the text written to clients.
var (
	// Conflict
	ErrUserAlreadyExists = newError(http.StatusBadRequest, "USER_ALREADY_EXISTS", "A user with that email already exists.")

	// Not found
	ErrInvalidEmail = newError(http.StatusBadRequest, "INVALID_EMAIL", "Invalid Email Address.")

	// Authentication
	ErrIncorrectPassword = newError(http.StatusBadRequest, "INCORRECT_PASSWORD", "Incorrect password!")
	ErrFaceMismatch      = newError(http.StatusUnauthorized, "FACE_MISMATCH", "Faces do not match, try again")
	ErrInvalidToken      = newError(http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")

	// Face enrollment
	ErrRetakePhoto        = newError(http.StatusBadRequest, "RETAKE_PHOTO", "Please take another photo.")
	ErrInvalidFacePayload = newError(http.StatusBadRequest, "INVALID_PAYLOAD", "Face data could not be decoded.")
	ErrTooManyRequests    = newError(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many requests, please slow down.")

	// Password policy
	ErrPasswordStrength       = newError(http.StatusBadRequest, "PASSWORD_STRENGTH", "Password does not meet the strength requirements.")
	ErrPasswordForbiddenWords = newError(http.StatusBadRequest, "PASSWORD_FORBIDDEN_WORDS", "Password contains a forbidden word or pattern.")

	// Infrastructure
	ErrPasswordHashFailed = newError(http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "Password could not be processed.")
	ErrUserCreationFailed = newError(http.StatusInternalServerError, "USER_CREATION_FAILED", "User could not be created.")
	ErrTokenIssueFailed   = newError(http.StatusInternalServerError, "TOKEN_ISSUE_FAILED", "Login token could not be issued.")
	ErrFaceServiceFailed  = newError(http.StatusBadGateway, "FACE_SERVICE_FAILED", "Face recognition is unavailable, please try again later.")
	ErrInternalError      = newError(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error, please try again later.")
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

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
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
	return "Database operation failed, please try again later."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
