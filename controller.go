package seam

import (
	"errors"
	"sync"
	"testing"
)

// Controller composes fake boundaries for activation as one scoped unit.
// Fakes are attached with the With* methods; any subset may be configured.
// Activation installs them in the fixed order environment, filesystem,
// HTTP, session, and the returned handle releases them in exactly the
// reverse order.
type Controller struct {
	boundaries *Boundaries
	env        Env
	fs         FS
	http       HTTP
	session    Session
}

// NewController creates a controller targeting b with no fakes attached.
func NewController(b *Boundaries) *Controller {
	return &Controller{boundaries: b}
}

// WithEnv attaches the environment fake to activate.
func (c *Controller) WithEnv(e Env) *Controller {
	c.env = e
	return c
}

// WithFS attaches the filesystem fake to activate.
func (c *Controller) WithFS(f FS) *Controller {
	c.fs = f
	return c
}

// WithHTTP attaches the outbound transport fake to activate.
func (c *Controller) WithHTTP(h HTTP) *Controller {
	c.http = h
	return c
}

// WithSession attaches the session fake to activate.
func (c *Controller) WithSession(s Session) *Controller {
	c.session = s
	return c
}

// Activate installs the attached fakes in order: environment, filesystem,
// HTTP, session. If a later activation fails, the fakes already installed
// by this call are released in reverse order before the error returns, so
// a failed composite activation leaves no overrides behind.
func (c *Controller) Activate() (*Handle, error) {
	if c.boundaries == nil {
		return nil, ErrNilBoundaries
	}

	h := &Handle{
		boundaries: c.boundaries,
		env:        c.env,
		fs:         c.fs,
		http:       c.http,
		session:    c.session,
	}

	// Activation steps in the documented order. Each step is skipped when
	// its fake was not attached.
	steps := []struct {
		attached bool
		activate func() (Token, error)
	}{
		{c.env != nil, func() (Token, error) { return c.boundaries.ActivateEnv(c.env) }},
		{c.fs != nil, func() (Token, error) { return c.boundaries.ActivateFS(c.fs) }},
		{c.http != nil, func() (Token, error) { return c.boundaries.ActivateHTTP(c.http) }},
		{c.session != nil, func() (Token, error) { return c.boundaries.ActivateSession(c.session) }},
	}

	for _, step := range steps {
		if !step.attached {
			continue
		}
		tok, err := step.activate()
		if err != nil {
			// Partial failure: tear down what this call installed.
			if relErr := h.Release(); relErr != nil {
				return nil, errors.Join(err, relErr)
			}
			return nil, err
		}
		h.tokens = append(h.tokens, tok)
	}

	return h, nil
}

// MustActivate activates the scope and registers release with the test's
// cleanup, so restoration runs on every exit path including panics and
// t.Fatal. Activation failure fails the test.
func (c *Controller) MustActivate(tb testing.TB) *Handle {
	tb.Helper()

	h, err := c.Activate()
	if err != nil {
		tb.Fatalf("activate boundaries: %v", err)
	}
	tb.Cleanup(func() {
		if err := h.Release(); err != nil {
			tb.Errorf("release boundaries: %v", err)
		}
	})
	return h
}

// Handle is the combined scope handle for one composite activation. It
// exposes the installed substitutes and releases the whole scope; the
// ledger itself stays hidden. Callers needing a fake's own configuration
// or assertion surface keep their typed pointer from construction.
type Handle struct {
	boundaries *Boundaries

	mu       sync.Mutex
	released bool
	tokens   []Token // activation order

	env     Env
	fs      FS
	http    HTTP
	session Session
}

// Release deactivates every boundary this handle activated, in reverse
// activation order. Every remaining deactivation is attempted even when an
// earlier one fails; failures are joined. Release is idempotent, so
// deferring it alongside an explicit call is safe.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return nil
	}
	h.released = true

	var errs []error
	for i := len(h.tokens) - 1; i >= 0; i-- {
		if err := h.boundaries.Deactivate(h.tokens[i]); err != nil {
			errs = append(errs, err)
		}
	}
	h.tokens = nil
	return errors.Join(errs...)
}

// Env returns the environment substitute installed by this scope, or nil
// if the scope did not include one.
func (h *Handle) Env() Env {
	return h.env
}

// FS returns the filesystem substitute installed by this scope, or nil.
func (h *Handle) FS() FS {
	return h.fs
}

// HTTP returns the transport substitute installed by this scope, or nil.
func (h *Handle) HTTP() HTTP {
	return h.http
}

// Session returns the session substitute installed by this scope, or nil.
func (h *Handle) Session() Session {
	return h.session
}
