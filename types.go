package seam

import (
	"context"
	"io/fs"
	"net/http"
)

// Kind identifies a substitutable boundary.
type Kind string

// The four boundary kinds, in their fixed composite activation order.
const (
	KindEnv        Kind = "env"
	KindFilesystem Kind = "filesystem"
	KindHTTP       Kind = "http"
	KindSession    Kind = "session"
)

// Env is the process-environment boundary.
// The real variant is [OSEnv]; the fake lives in package fakeenv.
type Env interface {
	// Lookup returns the variable's value and whether it is set.
	Lookup(name string) (string, bool)

	// Set assigns a variable.
	Set(name, value string) error

	// Unset removes a variable. Removing an absent variable is not an error.
	Unset(name string) error
}

// FS is the filesystem boundary.
// The real variant is [OSFS]; the fake lives in package fakefs.
type FS interface {
	// ReadFile returns the file's contents.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to a file, creating it if needed.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Remove deletes a file.
	Remove(name string) error

	// Exists reports whether the path exists.
	Exists(name string) (bool, error)

	// List returns the file paths under prefix in lexicographic order.
	List(prefix string) ([]string, error)

	// MkdirAll creates a directory along with any missing parents.
	MkdirAll(path string, perm fs.FileMode) error
}

// HTTP is the outbound-request boundary. It is the subset of
// [net/http.RoundTripper] the framework swaps, so any transport satisfies
// it. The fake lives in package fakehttp.
type HTTP interface {
	RoundTrip(req *http.Request) (*http.Response, error)
}

// Session is the request-scoped state boundary.
// The real variant is whatever store the application installs via
// [WithRealSession]; the fake lives in package fakesession.
type Session interface {
	// Get returns the value for key and whether it is present.
	Get(key string) (any, bool)

	// Set stores a value under key.
	Set(key string, value any)

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string)

	// Keys returns the stored keys in lexicographic order.
	Keys() []string
}

// Token is the opaque scope handle returned by activation. Ownership is
// exclusive to the activating call site; its only use is to release the
// scope, which must happen in reverse activation order.
type Token struct {
	id   string
	kind Kind
}

// Kind returns the boundary kind this token was issued for.
func (t Token) Kind() Kind {
	return t.kind
}

// IsZero reports whether the token was never issued by an activation.
func (t Token) IsZero() bool {
	return t.id == ""
}

// String renders the token for error messages.
func (t Token) String() string {
	if t.IsZero() {
		return "token(zero)"
	}
	return "token(" + string(t.kind) + ":" + t.id + ")"
}

type sessionContextKey struct{}

// WithSession returns a context carrying s, for handlers exercised through
// the inbound request harness.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFrom extracts the session installed by [WithSession].
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	return s, ok
}
