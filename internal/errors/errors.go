package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode checks whether err carries the given error code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	// Load errors: surfaced to the user immediately, no partial dataset retained
	CodeEmptyDataset        = "EMPTY_DATASET"
	CodeNoColumns           = "NO_COLUMNS"
	CodeOversize            = "DATASET_OVERSIZE"
	CodeUnsupportedEncoding = "UNSUPPORTED_ENCODING"

	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Common error constructors
func EmptyDataset() *AppError {
	return New(CodeEmptyDataset, "dataset has no data rows")
}

func NoColumns() *AppError {
	return New(CodeNoColumns, "dataset has no columns")
}

func Oversize(size, limit int64) *AppError {
	return New(CodeOversize, fmt.Sprintf("file is %d bytes, maximum is %d", size, limit))
}

func UnsupportedEncoding() *AppError {
	return New(CodeUnsupportedEncoding, "could not decode file with any supported encoding")
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}

// IsLoadError reports whether err is one of the dataset load failures
func IsLoadError(err error) bool {
	switch GetCode(err) {
	case CodeEmptyDataset, CodeNoColumns, CodeOversize, CodeUnsupportedEncoding:
		return true
	}
	return false
}
