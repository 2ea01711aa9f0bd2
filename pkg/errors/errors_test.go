package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidMetric, "unknown metric: %s", "chebyshev"),
			want: "INVALID_METRIC: unknown metric: chebyshev",
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeInvalidDataset, fmt.Errorf("eof"), "failed to read %s", "data.csv"),
			want: "INVALID_DATASET: failed to read data.csv: eof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidColumn, "bad column")
	if !Is(err, ErrCodeInvalidColumn) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}

	// Wrapped errors should still match
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeInvalidColumn) {
		t.Error("Is should unwrap the chain")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, cause, "something broke")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNotFound)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "value out of range")
	if got := UserMessage(err); got != "value out of range" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage plain = %q", got)
	}
	if strings.Contains(UserMessage(err), string(ErrCodeInvalidInput)) {
		t.Error("UserMessage should strip the code prefix")
	}
}
