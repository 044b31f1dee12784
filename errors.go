package seam

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel errors for misused entry points.
var (
	// ErrNilBoundaries is returned when an operation receives a nil container.
	ErrNilBoundaries = errors.New("seam: boundaries container is nil")

	// ErrNilSubstitute is returned when activation receives a nil substitute.
	ErrNilSubstitute = errors.New("seam: substitute is nil")
)

// Error codes for fixture validation failures.
const (
	ErrCodeRequired  = "required"
	ErrCodeInvalid   = "invalid"
	ErrCodeRange     = "range"
	ErrCodeExclusive = "exclusive"
)

// ConflictError reports a second activation for a boundary kind that is
// already overridden. It signals broken test setup and is never retried.
type ConflictError struct {
	Kind Kind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seam: %s boundary is already overridden", e.Kind)
}

// OrderingError reports a release that violates the LIFO scope discipline:
// releasing a token that is not the most recent activation, or one that was
// already released.
type OrderingError struct {
	Token  Token
	Reason string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("seam: release %s: %s", e.Token, e.Reason)
}

// UnexpectedCallError reports an outbound HTTP call that matched no
// programmed rule. The call never reaches the real network.
type UnexpectedCallError struct {
	Method string
	URL    string
}

func (e *UnexpectedCallError) Error() string {
	return fmt.Sprintf("seam: unexpected HTTP call %s %s: no matching rule", e.Method, e.URL)
}

// NotFoundError reports a virtual filesystem operation on a path that was
// never written. It unwraps to fs.ErrNotExist, so
// errors.Is(err, fs.ErrNotExist) holds.
type NotFoundError struct {
	Op   string // Operation (e.g., "read", "remove")
	Path string // Normalized virtual path
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("seam: %s %s: file does not exist", e.Op, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ValidationError aggregates field-level fixture validation failures.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "seam: fixture validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("seam: fixture validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "seam: fixture validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.FieldPath, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// FieldError represents a single fixture field validation failure.
type FieldError struct {
	FieldPath string // Dot notation (e.g., "http.rules[2].status")
	Code      string // Error code (e.g., "required", "range")
	Message   string // Human-readable description
}
