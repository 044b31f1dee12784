// Package seam provides scoped, deterministic substitution of external
// boundaries (environment, filesystem, outbound HTTP, session state) for
// tests, with guaranteed restoration.
//
// Quick Start:
//
//	b := seam.New()
//
//	f := fakehttp.New(fakehttp.Options{})
//	f.Route(fakehttp.Get("/health"), fakehttp.JSON(200, map[string]any{"ok": true}))
//
//	seam.NewController(b).WithHTTP(f).MustActivate(t)
//
//	resp, err := b.Client().Get("https://api.internal/health")
//
// Each boundary is an interface with a real variant and an in-memory fake;
// activation swaps the fake in behind the interface and release restores
// the prior behavior, in reverse activation order, on every exit path.
//
// See example_test.go for detailed usage.
package seam
