package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeFileNotFound, "missing")
	if err.Code != ErrCodeFileNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeFileNotFound, err.Code)
	}
	if err.Message != "missing" {
		t.Errorf("expected message 'missing', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("FILE_NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out")
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_DirectoryNotFound(t *testing.T) {
	err := DirectoryNotFound("/data/datasets/cora")
	if err.Code != ErrCodeDirectoryNotFound {
		t.Errorf("expected DIRECTORY_NOT_FOUND, got %s", err.Code)
	}
	if err.Message != "/data/datasets/cora not found." {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["path"] != "/data/datasets/cora" {
		t.Errorf("expected path detail, got %v", err.Details["path"])
	}
}

func TestAppError_FileNotFound(t *testing.T) {
	err := FileNotFound("/data/datasets/cora/metadata.json")
	if err.Code != ErrCodeFileNotFound {
		t.Errorf("expected FILE_NOT_FOUND, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), "/data/datasets/cora/metadata.json") {
		t.Errorf("expected path in error string, got %q", err.Error())
	}
}

func TestAppError_UnsupportedTaskType(t *testing.T) {
	err := UnsupportedTaskType("UnknownType")
	if err.Code != ErrCodeUnsupportedTaskType {
		t.Errorf("expected UNSUPPORTED_TASK_TYPE, got %s", err.Code)
	}
	if err.Message != "Unsupported type UnknownType" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["type"] != "UnknownType" {
		t.Errorf("expected type detail, got %v", err.Details["type"])
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("feature", "unknown attribute")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "feature" {
		t.Errorf("expected field=feature, got %v", err.Details["field"])
	}

	noField := InvalidInput("", "bad")
	if _, ok := noField.Details["field"]; ok {
		t.Error("expected no 'field' key when field is empty")
	}
}

func TestAppError_DownloadFailed(t *testing.T) {
	cause := fmt.Errorf("HTTP 404")
	err := DownloadFailed("cora.npz", cause)
	if !err.Retryable {
		t.Error("DownloadFailed should be retryable")
	}
	if err.Unwrap() != cause {
		t.Error("expected cause to be set")
	}
	if err.Details["file"] != "cora.npz" {
		t.Errorf("expected file detail, got %v", err.Details["file"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := FileNotFound("x").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := FileNotFound("x").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["path"] != "x" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetails_Nil(t *testing.T) {
	err := Internal(nil).WithDetails(nil)
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized even with nil input")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		retryable bool
	}{
		{"ConnectionFailed", ConnectionFailed("s3"), ErrCodeConnectionFailed, true},
		{"Timeout", Timeout("download"), ErrCodeTimeout, true},
		{"MissingField", MissingField("type"), ErrCodeMissingField, false},
		{"InvalidFormat", InvalidFormat("metadata.json", "JSON"), ErrCodeInvalidFormat, false},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, false},
		{"Internal", Internal(nil), ErrCodeInternal, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestAppError_IsAppError_Success(t *testing.T) {
	appErr := FileNotFound("x")
	if !IsAppError(appErr) {
		t.Error("expected IsAppError to return true for AppError")
	}
	if !IsAppError(fmt.Errorf("wrapped: %w", appErr)) {
		t.Error("expected IsAppError to return true for wrapped AppError")
	}
	if IsAppError(fmt.Errorf("plain error")) {
		t.Error("expected IsAppError to return false for plain error")
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestHasCode(t *testing.T) {
	inner := ConnectionFailed("example.org")
	outer := DownloadFailed("a.npz", inner)

	if !HasCode(outer, ErrCodeDownloadFailed) {
		t.Error("expected outer code to match")
	}
	if !HasCode(outer, ErrCodeConnectionFailed) {
		t.Error("expected cause code to match")
	}
	if HasCode(outer, ErrCodeFileNotFound) {
		t.Error("unexpected match for FILE_NOT_FOUND")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
	if HasCode(nil, ErrCodeInternal) {
		t.Error("nil carries no code")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = FileNotFound("x")
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Error("stderrors.As should work with AppError")
	}
}
