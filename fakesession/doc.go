// Package fakesession provides the in-memory session boundary fake.
//
// A fresh fake starts empty or from a cloned seed, never from a prior
// scope's residue.
//
// Example:
//
//	f := fakesession.New(fakesession.Options{Seed: map[string]any{"user_id": 42}})
//	h := seam.NewController(b).WithSession(f).MustActivate(t)
package fakesession
