package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Database errors
	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION"
	ErrCodeDatabaseQuery      ErrorCode = "DATABASE_QUERY"
	ErrCodeDatabaseMigration  ErrorCode = "DATABASE_MIGRATION"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeConflict      ErrorCode = "CONFLICT"

	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Audio capture errors
	ErrCodeDevicePermission ErrorCode = "DEVICE_PERMISSION"
	ErrCodeDeviceNotFound   ErrorCode = "DEVICE_NOT_FOUND"
	ErrCodeDeviceBusy       ErrorCode = "DEVICE_BUSY"
	ErrCodeEmptyRecording   ErrorCode = "EMPTY_RECORDING"

	// Remote library errors
	ErrCodeUploadFailed   ErrorCode = "UPLOAD_FAILED"
	ErrCodeUploadTimeout  ErrorCode = "UPLOAD_TIMEOUT"
	ErrCodeReconciliation ErrorCode = "RECONCILIATION"

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL"
	ErrCodeStorage  ErrorCode = "STORAGE"
)

// AppError represents a structured application error
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"`
	Cause    error                  `json:"-"`
	HTTPCode int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// GetHTTPCode returns the appropriate HTTP status code
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// getDefaultHTTPCode returns the default HTTP status code for an error code
func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound, ErrCodeDeviceNotFound:
		return http.StatusNotFound
	case ErrCodeAlreadyExists, ErrCodeConflict, ErrCodeDeviceBusy:
		return http.StatusConflict
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeEmptyRecording:
		return http.StatusBadRequest
	case ErrCodeDevicePermission:
		return http.StatusForbidden
	case ErrCodeUploadTimeout:
		return http.StatusRequestTimeout
	case ErrCodeUploadFailed, ErrCodeReconciliation:
		return http.StatusBadGateway
	case ErrCodeStorage:
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// NotFound creates a not found error
func NotFound(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *AppError {
	return New(ErrCodeInvalidInput, reason)
}

// MissingFieldError creates a missing field error
func MissingFieldError(field string) *AppError {
	return New(ErrCodeMissingField, fmt.Sprintf("required field '%s' is missing", field)).
		WithDetail("field", field)
}

// Conflict creates a conflict error for a word that already exists remotely
func Conflict(word string) *AppError {
	return New(ErrCodeConflict, fmt.Sprintf("word '%s' already exists in the library", word)).
		WithDetail("word", word)
}

// EmptyRecording creates an empty recording error
func EmptyRecording(word string) *AppError {
	return New(ErrCodeEmptyRecording, fmt.Sprintf("captured no audio for word '%s', record again", word)).
		WithDetail("word", word)
}

// DatabaseError creates a database error
func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabaseQuery, fmt.Sprintf("database %s failed", operation)).
		WithDetail("operation", operation)
}

// UploadError creates an upload failure error
func UploadError(word string, cause error) *AppError {
	return Wrap(cause, ErrCodeUploadFailed, fmt.Sprintf("upload failed for word '%s'", word)).
		WithDetail("word", word)
}

// UploadTimeoutError creates an upload timeout error
func UploadTimeoutError(word string, timeout string) *AppError {
	return New(ErrCodeUploadTimeout, fmt.Sprintf("upload for word '%s' timed out after %s", word, timeout)).
		WithDetail("word", word).
		WithDetail("timeout", timeout)
}

// ReconciliationError creates a vocabulary reconciliation error
func ReconciliationError(detail string, cause error) *AppError {
	msg := "vocabulary reconciliation failed"
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return Wrap(cause, ErrCodeReconciliation, msg)
}

// Is checks if an error is of a specific type
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
