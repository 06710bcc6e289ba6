package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_WithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewDownloadError("failed to fetch list", cause)

	msg := err.Error()
	if !strings.Contains(msg, "DOWNLOAD_ERROR") {
		t.Errorf("Expected code in message, got: %s", msg)
	}
	if !strings.Contains(msg, "connection refused") {
		t.Errorf("Expected cause in message, got: %s", msg)
	}
}

func TestError_WithoutCause(t *testing.T) {
	err := NewSourceNotFoundError("no such file")

	msg := err.Error()
	if msg != "[SOURCE_NOT_FOUND] no such file" {
		t.Errorf("Unexpected message: %s", msg)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NewConfigError("bad config", cause)

	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
}

func TestError_IsMatchesCode(t *testing.T) {
	err := NewInputError("neither file nor URL given")

	if !stderrors.Is(err, New(ErrCodeInput, "")) {
		t.Error("Expected errors with same code to match")
	}
	if stderrors.Is(err, New(ErrCodeDownload, "")) {
		t.Error("Expected errors with different codes not to match")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{
			name:     "Domain error",
			err:      NewInputError("missing"),
			expected: ErrCodeInput,
		},
		{
			name:     "Wrapped domain error",
			err:      fmt.Errorf("outer: %w", NewSourceNotFoundError("gone")),
			expected: ErrCodeSourceNotFound,
		},
		{
			name:     "Plain error",
			err:      fmt.Errorf("something"),
			expected: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := CodeOf(tt.err); code != tt.expected {
				t.Errorf("Expected code %s, got %s", tt.expected, code)
			}
		})
	}
}
