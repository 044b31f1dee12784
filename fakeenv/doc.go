// Package fakeenv provides the in-memory environment boundary fake.
//
// The real process environment is read once at construction (when
// inheriting) and never written to.
//
// Example:
//
//	f := fakeenv.New(fakeenv.Options{Vars: map[string]string{"APP_MODE": "test"}})
//	h := seam.NewController(b).WithEnv(f).MustActivate(t)
package fakeenv
