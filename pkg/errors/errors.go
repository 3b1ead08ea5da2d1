package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Path resolution errors
	ErrResolution    ErrorCode = "RESOLUTION"
	ErrPathNotFound  ErrorCode = "PATH_NOT_FOUND"
	ErrNotUnderRoot  ErrorCode = "NOT_UNDER_ROOT"
	ErrEmptyRelative ErrorCode = "EMPTY_RELATIVE"

	// Link engine errors
	ErrMove               ErrorCode = "MOVE"
	ErrConflict           ErrorCode = "CONFLICT"
	ErrPartiallyApplied   ErrorCode = "PARTIALLY_APPLIED"
	ErrSourceMissing      ErrorCode = "SOURCE_MISSING"
	ErrWouldOverwriteFile ErrorCode = "WOULD_OVERWRITE_FILE"
	ErrWouldOverwriteLink ErrorCode = "WOULD_OVERWRITE_LINK"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrCopy          ErrorCode = "COPY"
	ErrScratch       ErrorCode = "SCRATCH"

	// Manifest errors
	ErrManifestRead  ErrorCode = "MANIFEST_READ"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"

	// Repository backend errors
	ErrGit ErrorCode = "GIT"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// DottyError represents a structured error with code and details
type DottyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DottyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DottyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DottyError) Is(target error) bool {
	var targetErr *DottyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DottyError with the given code and message
func New(code ErrorCode, message string) *DottyError {
	return &DottyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DottyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DottyError {
	return &DottyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DottyError
func Wrap(err error, code ErrorCode, message string) *DottyError {
	if err == nil {
		return nil
	}
	return &DottyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DottyError {
	if err == nil {
		return nil
	}
	return &DottyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DottyError) WithDetail(key string, value interface{}) *DottyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithPaths records both sides of a link operation so a user can act on the
// failure by hand.
func (e *DottyError) WithPaths(original, store string) *DottyError {
	return e.WithDetail("original", original).WithDetail("store", store)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dottyErr *DottyError
	if errors.As(err, &dottyErr) {
		return dottyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DottyError
func GetErrorCode(err error) ErrorCode {
	var dottyErr *DottyError
	if errors.As(err, &dottyErr) {
		return dottyErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DottyError
func GetErrorDetails(err error) map[string]interface{} {
	var dottyErr *DottyError
	if errors.As(err, &dottyErr) {
		return dottyErr.Details
	}
	return nil
}
