package seam

import (
	"net/http"
	"sync"
)

// Option configures a Boundaries container using the functional options
// pattern.
type Option func(*Boundaries)

// WithRealEnv installs e as the real environment boundary.
// Default: [OSEnv].
func WithRealEnv(e Env) Option {
	return func(b *Boundaries) {
		b.env = e
	}
}

// WithRealFS installs f as the real filesystem boundary.
// Default: [OSFS].
func WithRealFS(f FS) Option {
	return func(b *Boundaries) {
		b.fs = f
	}
}

// WithRealHTTP installs rt as the real outbound transport.
// Default: http.DefaultTransport.
func WithRealHTTP(rt http.RoundTripper) Option {
	return func(b *Boundaries) {
		b.http = rt
	}
}

// WithRealSession installs s as the real session store.
// Default: a process-local in-memory store.
func WithRealSession(s Session) Option {
	return func(b *Boundaries) {
		b.session = s
	}
}

// Boundaries bundles the four substitutable boundaries behind stable
// accessors, together with the ledger governing their overrides. It is the
// explicit context object application code receives instead of reaching
// for package-level state: construct one per composition root (and one per
// parallel test worker), inject it, and activate fakes against it.
//
// The accessors return gate values that always delegate to the current
// slot, so a dependency captured before activation transparently sees the
// swap, including an http.Client obtained from [Boundaries.Client] and
// cached by code under test.
type Boundaries struct {
	ledger *Ledger

	mu      sync.RWMutex
	env     Env
	fs      FS
	http    HTTP
	session Session

	client *http.Client
}

// New creates a container with the real variants installed.
func New(opts ...Option) *Boundaries {
	b := &Boundaries{
		ledger:  NewLedger(),
		env:     OSEnv{},
		fs:      OSFS{},
		http:    http.DefaultTransport,
		session: newMemSession(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.client = &http.Client{Transport: httpGate{b}}
	return b
}

// Env returns the environment boundary. The value is a stable gate; reads
// through it follow activations and releases.
func (b *Boundaries) Env() Env {
	return envGate{b}
}

// FS returns the filesystem boundary gate.
func (b *Boundaries) FS() FS {
	return fsGate{b}
}

// HTTP returns the outbound transport gate.
func (b *Boundaries) HTTP() HTTP {
	return httpGate{b}
}

// Session returns the session boundary gate.
func (b *Boundaries) Session() Session {
	return sessionGate{b}
}

// Client returns an http.Client routed through the transport gate. The
// client is shared and safe to cache: its transport follows activations.
func (b *Boundaries) Client() *http.Client {
	return b.client
}

// ActivateEnv overrides the environment boundary with sub.
func (b *Boundaries) ActivateEnv(sub Env) (Token, error) {
	if sub == nil {
		return Token{}, ErrNilSubstitute
	}
	var prior Env
	return b.ledger.Activate(KindEnv, sub,
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			prior = b.env
			b.env = sub
		},
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.env = prior
		},
	)
}

// ActivateFS overrides the filesystem boundary with sub.
func (b *Boundaries) ActivateFS(sub FS) (Token, error) {
	if sub == nil {
		return Token{}, ErrNilSubstitute
	}
	var prior FS
	return b.ledger.Activate(KindFilesystem, sub,
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			prior = b.fs
			b.fs = sub
		},
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.fs = prior
		},
	)
}

// ActivateHTTP overrides the outbound transport with sub.
func (b *Boundaries) ActivateHTTP(sub HTTP) (Token, error) {
	if sub == nil {
		return Token{}, ErrNilSubstitute
	}
	var prior HTTP
	return b.ledger.Activate(KindHTTP, sub,
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			prior = b.http
			b.http = sub
		},
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.http = prior
		},
	)
}

// ActivateSession overrides the session boundary with sub.
func (b *Boundaries) ActivateSession(sub Session) (Token, error) {
	if sub == nil {
		return Token{}, ErrNilSubstitute
	}
	var prior Session
	return b.ledger.Activate(KindSession, sub,
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			prior = b.session
			b.session = sub
		},
		func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.session = prior
		},
	)
}

// Deactivate releases the override identified by tok and restores the
// prior boundary. Releases must happen in reverse activation order.
func (b *Boundaries) Deactivate(tok Token) error {
	return b.ledger.Deactivate(tok)
}

// IsActive reports whether kind currently has an override.
func (b *Boundaries) IsActive(kind Kind) bool {
	return b.ledger.IsActive(kind)
}

// ActiveKinds returns the overridden kinds in activation order.
func (b *Boundaries) ActiveKinds() []Kind {
	return b.ledger.Kinds()
}

func (b *Boundaries) currentEnv() Env {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.env
}

func (b *Boundaries) currentFS() FS {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fs
}

func (b *Boundaries) currentHTTP() HTTP {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.http
}

func (b *Boundaries) currentSession() Session {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session
}
