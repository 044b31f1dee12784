package fakeenv

import (
	"os"
	"strings"
	"sync"
)

// Options configures the environment fake.
type Options struct {
	// Vars are the variables visible during the scope. With InheritReal
	// they overlay the inherited snapshot; without, they are the whole
	// environment.
	Vars map[string]string

	// Unset names read as absent even when inherited.
	// Vars wins if a name appears in both.
	Unset []string

	// InheritReal seeds the fake from the real process environment.
	// When false the fake starts from Vars alone and every other name
	// reads as absent.
	InheritReal bool

	// ClearPrefix drops every inherited variable whose name starts with
	// the prefix. Only meaningful with InheritReal.
	ClearPrefix string
}

// Fake is an in-memory environment boundary. Reads and writes during the
// scope touch only the fake's mapping; the process environment is read
// once, in New, and never mutated. Safe for concurrent use.
type Fake struct {
	mu        sync.RWMutex
	vars      map[string]string
	inherited bool
}

// New builds the fake per opts. With InheritReal the real environment is
// snapshotted here, so later changes to the process environment do not
// bleed into the scope.
func New(opts Options) *Fake {
	vars := make(map[string]string)

	if opts.InheritReal {
		for _, kv := range os.Environ() {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) != 2 {
				continue
			}
			if opts.ClearPrefix != "" && strings.HasPrefix(parts[0], opts.ClearPrefix) {
				continue
			}
			vars[parts[0]] = parts[1]
		}
	}

	for _, name := range opts.Unset {
		delete(vars, name)
	}
	for name, value := range opts.Vars {
		vars[name] = value
	}

	return &Fake{vars: vars, inherited: opts.InheritReal}
}

// Lookup returns the variable's value and whether it is set.
func (f *Fake) Lookup(name string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.vars[name]
	return value, ok
}

// Set assigns a variable in the fake's mapping.
func (f *Fake) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vars[name] = value
	return nil
}

// Unset removes a variable from the fake's mapping.
func (f *Fake) Unset(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.vars, name)
	return nil
}

// Snapshot returns a copy of the current mapping for assertions.
func (f *Fake) Snapshot() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snapshot := make(map[string]string, len(f.vars))
	for name, value := range f.vars {
		snapshot[name] = value
	}
	return snapshot
}

// Summary describes the fake for state dumps.
func (f *Fake) Summary() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return map[string]any{
		"vars":         len(f.vars),
		"inherit_real": f.inherited,
	}
}
