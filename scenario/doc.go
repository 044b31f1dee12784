// Package scenario loads composite boundary fixtures from YAML, JSON, or
// TOML files and builds ready-to-activate controllers from them.
//
// Format is auto-detected from extension (.yaml, .json, .toml).
//
// Example:
//
//	cfg, err := scenario.Load("testdata/checkout.yaml")
//	ctl, fakes, err := cfg.Build(b)
//	h := ctl.MustActivate(t)
//	fakes.HTTP.AssertCalled(t, fakehttp.Get("/health"))
package scenario
