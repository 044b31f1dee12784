package fakesession

import (
	"sort"
	"sync"
)

// Options seeds the session fake.
type Options struct {
	// Seed holds the initial key/value pairs. The map is cloned, so later
	// mutation of the caller's map does not leak into the scope.
	Seed map[string]any
}

// Fake is an in-memory session boundary scoped to a simulated request
// lifecycle. Safe for concurrent use.
type Fake struct {
	mu     sync.RWMutex
	values map[string]any
}

// New builds the fake with a cloned seed.
func New(opts Options) *Fake {
	values := make(map[string]any, len(opts.Seed))
	for key, value := range opts.Seed {
		values[key] = value
	}
	return &Fake{values: values}
}

// Get returns the value for key and whether it is present.
func (f *Fake) Get(key string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.values[key]
	return value, ok
}

// Set stores a value under key.
func (f *Fake) Set(key string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Delete removes a key.
func (f *Fake) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
}

// Keys returns the stored keys in lexicographic order.
func (f *Fake) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	keys := make([]string, 0, len(f.values))
	for key := range f.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (f *Fake) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.values)
}

// Snapshot returns a copy of the store for assertions.
func (f *Fake) Snapshot() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snapshot := make(map[string]any, len(f.values))
	for key, value := range f.values {
		snapshot[key] = value
	}
	return snapshot
}

// Summary describes the fake for state dumps.
func (f *Fake) Summary() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return map[string]any{
		"keys": len(f.values),
	}
}
