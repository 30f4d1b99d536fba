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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Source tree errors
	ErrSourceNotFound   ErrorCode = "SOURCE_NOT_FOUND"
	ErrCategoryMissing  ErrorCode = "CATEGORY_MISSING"
	ErrNotInSourceTree  ErrorCode = "NOT_IN_SOURCE_TREE"
	ErrGroupNotFound    ErrorCode = "GROUP_NOT_FOUND"
	ErrGroupUnsupported ErrorCode = "GROUP_UNSUPPORTED"
	ErrFileNotFound     ErrorCode = "FILE_NOT_FOUND"

	// Link errors
	ErrTargetConflict ErrorCode = "TARGET_CONFLICT"
	ErrLinkIO         ErrorCode = "LINK_IO"
	ErrUnlinkIO       ErrorCode = "UNLINK_IO"
	ErrAdopt          ErrorCode = "ADOPT"

	// Hook errors
	ErrHookExecution ErrorCode = "HOOK_EXECUTION_FAILED"

	// Secret errors
	ErrEncryption ErrorCode = "ENCRYPTION"
	ErrDecryption ErrorCode = "DECRYPTION"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an *Error
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an *Error
func GetErrorDetails(err error) map[string]interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

// Process exit codes surfaced by the command line.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitSourceNotFound  = 2
	ExitCategoryMissing = 3
	ExitFileNotFound    = 4
	ExitEncryption      = 5
	ExitDecryption      = 6
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetErrorCode(err) {
	case ErrSourceNotFound:
		return ExitSourceNotFound
	case ErrCategoryMissing:
		return ExitCategoryMissing
	case ErrFileNotFound:
		return ExitFileNotFound
	case ErrEncryption:
		return ExitEncryption
	case ErrDecryption:
		return ExitDecryption
	default:
		return ExitFailure
	}
}
