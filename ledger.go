package seam

import (
	"sync"

	"github.com/google/uuid"
)

// Ledger is the single source of truth for which boundary kinds are
// currently overridden, and by what. It enforces the activation contract:
// at most one active override per kind, and release in reverse activation
// order (LIFO) across kinds.
//
// A Ledger belongs to one [Boundaries] container; it is not shared across
// concurrently running test scopes. Override entries are ledger-private:
// activation hands the ledger install/restore closures and every slot swap
// runs under the ledger's lock.
type Ledger struct {
	mu    sync.Mutex
	stack []overrideEntry
}

// overrideEntry records one active override.
type overrideEntry struct {
	kind       Kind
	token      Token
	substitute any
	restore    func()
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Activate records an override for kind and returns its scope token.
// It fails with ConflictError if kind is already overridden. On success,
// install runs under the ledger's lock and restore is retained for
// Deactivate.
func (l *Ledger) Activate(kind Kind, substitute any, install, restore func()) (Token, error) {
	if substitute == nil {
		return Token{}, ErrNilSubstitute
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.stack {
		if e.kind == kind {
			return Token{}, &ConflictError{Kind: kind}
		}
	}

	tok := Token{id: uuid.NewString(), kind: kind}
	if install != nil {
		install()
	}
	l.stack = append(l.stack, overrideEntry{
		kind:       kind,
		token:      tok,
		substitute: substitute,
		restore:    restore,
	})
	return tok, nil
}

// Deactivate releases the override identified by tok, running its restore
// closure. It fails with OrderingError unless tok is the most recent
// activation still held: releasing a deeper entry, a released token, or a
// token this ledger never issued all violate the scope discipline.
func (l *Ledger) Deactivate(tok Token) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tok.IsZero() {
		return &OrderingError{Token: tok, Reason: "token was never issued"}
	}
	if len(l.stack) == 0 {
		return &OrderingError{Token: tok, Reason: "no overrides are active"}
	}

	top := l.stack[len(l.stack)-1]
	if top.token != tok {
		for _, e := range l.stack {
			if e.token == tok {
				return &OrderingError{
					Token:  tok,
					Reason: "out of order: " + string(top.kind) + " was activated later and must be released first",
				}
			}
		}
		return &OrderingError{Token: tok, Reason: "already released or unknown"}
	}

	l.stack = l.stack[:len(l.stack)-1]
	if top.restore != nil {
		top.restore()
	}
	return nil
}

// IsActive reports whether kind currently has an override.
func (l *Ledger) IsActive(kind Kind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.stack {
		if e.kind == kind {
			return true
		}
	}
	return false
}

// Active returns the installed substitute for kind, if any.
func (l *Ledger) Active(kind Kind) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.stack {
		if e.kind == kind {
			return e.substitute, true
		}
	}
	return nil, false
}

// Kinds returns the overridden kinds in activation order.
func (l *Ledger) Kinds() []Kind {
	l.mu.Lock()
	defer l.mu.Unlock()

	kinds := make([]Kind, len(l.stack))
	for i, e := range l.stack {
		kinds[i] = e.kind
	}
	return kinds
}
