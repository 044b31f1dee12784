// Package fakehttp provides the HTTP boundary fake: an outbound transport
// programmed with ordered request→response rules, and a synthetic inbound
// request harness.
//
// Outbound, the first rule whose matcher accepts the request wins; a call
// matching no rule fails with seam.UnexpectedCallError and never reaches
// the real network. Every attempted call is recorded for assertions.
//
// Example:
//
//	f := fakehttp.New(fakehttp.Options{})
//	f.Route(fakehttp.Get("/health"), fakehttp.JSON(200, map[string]any{"ok": true}))
//	f.RouteError(fakehttp.Post("/submit"), errors.New("connection reset"))
//
//	h := seam.NewController(b).WithHTTP(f).MustActivate(t)
//	resp, err := b.Client().Get("https://api.internal/health")
//	f.AssertCalled(t, fakehttp.Get("/health"))
package fakehttp
