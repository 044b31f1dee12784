package seam

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestConflictError_Error(t *testing.T) {
	err := &ConflictError{Kind: KindHTTP}

	got := err.Error()
	want := "seam: http boundary is already overridden"

	if got != want {
		t.Errorf("ConflictError.Error()\ngot:  %q\nwant: %q", got, want)
	}
}

func TestOrderingError_Error(t *testing.T) {
	err := &OrderingError{
		Token:  Token{id: "abc-123", kind: KindEnv},
		Reason: "already released or unknown",
	}

	got := err.Error()
	want := "seam: release token(env:abc-123): already released or unknown"

	if got != want {
		t.Errorf("OrderingError.Error()\ngot:  %q\nwant: %q", got, want)
	}
}

func TestUnexpectedCallError_Error(t *testing.T) {
	err := &UnexpectedCallError{
		Method: "POST",
		URL:    "https://api.internal/orders",
	}

	got := err.Error()
	want := "seam: unexpected HTTP call POST https://api.internal/orders: no matching rule"

	if got != want {
		t.Errorf("UnexpectedCallError.Error()\ngot:  %q\nwant: %q", got, want)
	}
}

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{Op: "read", Path: "/missing.txt"}

	got := err.Error()
	want := "seam: read /missing.txt: file does not exist"

	if got != want {
		t.Errorf("NotFoundError.Error()\ngot:  %q\nwant: %q", got, want)
	}
}

func TestNotFoundError_UnwrapsToErrNotExist(t *testing.T) {
	err := &NotFoundError{Op: "read", Path: "/missing.txt"}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(NotFoundError, fs.ErrNotExist) = false, want true")
	}
}

func TestValidationError_Error_SingleError(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{
				FieldPath: "http.rules[0]",
				Code:      ErrCodeRequired,
				Message:   "rule needs a method or url",
			},
		},
	}

	got := ve.Error()
	want := "seam: fixture validation failed: 1 error\n  - http.rules[0]: required (rule needs a method or url)"

	if got != want {
		t.Errorf("ValidationError.Error() with single error\ngot:  %q\nwant: %q", got, want)
	}
}

func TestValidationError_Error_MultipleErrors(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{
				FieldPath: "env.clear_prefix",
				Code:      ErrCodeInvalid,
				Message:   "requires inherit_real",
			},
			{
				FieldPath: "http.rules[2].status",
				Code:      ErrCodeRange,
				Message:   "status must be between 100 and 599",
			},
			{
				FieldPath: "http.rules[3]",
				Code:      ErrCodeExclusive,
				Message:   "body and json are mutually exclusive",
			},
		},
	}

	got := ve.Error()

	if !strings.HasPrefix(got, "seam: fixture validation failed: 3 errors\n") {
		t.Errorf("ValidationError.Error() header incorrect\ngot: %q", got)
	}

	expectedErrors := []string{
		"  - env.clear_prefix: invalid (requires inherit_real)",
		"  - http.rules[2].status: range (status must be between 100 and 599)",
		"  - http.rules[3]: exclusive (body and json are mutually exclusive)",
	}

	for _, expected := range expectedErrors {
		if !strings.Contains(got, expected) {
			t.Errorf("ValidationError.Error() missing expected error\ngot:  %q\nwant to contain: %q", got, expected)
		}
	}
}

func TestValidationError_Error_NoErrors(t *testing.T) {
	ve := &ValidationError{FieldErrors: []FieldError{}}

	got := ve.Error()
	want := "seam: fixture validation failed: no errors"

	if got != want {
		t.Errorf("ValidationError.Error() with no errors\ngot:  %q\nwant: %q", got, want)
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"required code", ErrCodeRequired, "required"},
		{"invalid code", ErrCodeInvalid, "invalid"},
		{"range code", ErrCodeRange, "range"},
		{"exclusive code", ErrCodeExclusive, "exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("error code = %q, want %q", tt.code, tt.want)
			}
		})
	}
}
