package errors

import (
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Lookup ---

// DirectoryNotFound creates an error for a missing dataset directory.
func DirectoryNotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeDirectoryNotFound, Message: fmt.Sprintf("%s not found.", path),
		Details: map[string]any{"path": path},
	}
}

// FileNotFound creates an error for a missing file.
func FileNotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeFileNotFound, Message: fmt.Sprintf("%s not found.", path),
		Details: map[string]any{"path": path},
	}
}

// --- Dispatch ---

// UnsupportedTaskType creates an error for a task type no dataset factory handles.
func UnsupportedTaskType(taskType string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedTaskType, Message: fmt.Sprintf("Unsupported type %s", taskType),
		Details: map[string]any{"type": taskType},
	}
}

// --- Validation ---

// InvalidInput creates an error for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates an error for struct validation failures.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates an error for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// InvalidFormat creates an error for a file that cannot be decoded.
func InvalidFormat(path, expectedFormat string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("Invalid format for %s. Expected: %s", path, expectedFormat),
		Details: map[string]any{"path": path, "expected_format": expectedFormat},
	}
}

// --- Transfer ---

// DownloadFailed creates an error for a dataset file that could not be fetched.
func DownloadFailed(file string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDownloadFailed, Message: fmt.Sprintf("Failed to download %s.", file),
		Retryable: true, Details: map[string]any{"file": file}, Cause: cause,
	}
}

// ConnectionFailed creates an error for a failed connection to a remote source.
func ConnectionFailed(source string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s.", source),
		Retryable: true, Details: map[string]any{"source": source},
	}
}

// Timeout creates an error for an operation that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The operation took too long.",
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}
