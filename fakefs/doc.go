// Package fakefs provides the in-memory filesystem boundary fake.
//
// Paths are normalized to rooted slash form ("cfg.json" → "/cfg.json");
// writes create missing parent directories. Nothing touches the real
// filesystem while a fake is active.
//
// Example:
//
//	f := fakefs.New(fakefs.Options{Files: map[string][]byte{"/cfg.json": []byte(`{"x":1}`)}})
//	h := seam.NewController(b).WithFS(f).MustActivate(t)
package fakefs
