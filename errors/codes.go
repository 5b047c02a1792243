package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Lookup errors
const (
	// ErrCodeDirectoryNotFound indicates a dataset directory does not exist.
	ErrCodeDirectoryNotFound ErrorCode = "DIRECTORY_NOT_FOUND"
	// ErrCodeFileNotFound indicates a metadata, task or payload file does not exist.
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
)

// Dispatch errors
const (
	// ErrCodeUnsupportedTaskType indicates a task type outside the known enumeration.
	ErrCodeUnsupportedTaskType ErrorCode = "UNSUPPORTED_TASK_TYPE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a file or field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Transfer errors (retryable)
const (
	// ErrCodeDownloadFailed indicates a dataset file could not be fetched.
	ErrCodeDownloadFailed ErrorCode = "DOWNLOAD_FAILED"
	// ErrCodeConnectionFailed indicates a failed connection to a remote source.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDownloadFailed:   true,
	ErrCodeConnectionFailed: true,
	ErrCodeTimeout:          true,
	ErrCodeInternal:         false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
