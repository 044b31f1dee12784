package seam

import (
	"io/fs"
	"net/http"
)

// Gates are the values handed to application code. Each call reads the
// container's current slot, so an activation made after the gate was
// captured still takes effect.

type envGate struct {
	b *Boundaries
}

func (g envGate) Lookup(name string) (string, bool) {
	return g.b.currentEnv().Lookup(name)
}

func (g envGate) Set(name, value string) error {
	return g.b.currentEnv().Set(name, value)
}

func (g envGate) Unset(name string) error {
	return g.b.currentEnv().Unset(name)
}

type fsGate struct {
	b *Boundaries
}

func (g fsGate) ReadFile(name string) ([]byte, error) {
	return g.b.currentFS().ReadFile(name)
}

func (g fsGate) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return g.b.currentFS().WriteFile(name, data, perm)
}

func (g fsGate) Remove(name string) error {
	return g.b.currentFS().Remove(name)
}

func (g fsGate) Exists(name string) (bool, error) {
	return g.b.currentFS().Exists(name)
}

func (g fsGate) List(prefix string) ([]string, error) {
	return g.b.currentFS().List(prefix)
}

func (g fsGate) MkdirAll(path string, perm fs.FileMode) error {
	return g.b.currentFS().MkdirAll(path, perm)
}

type httpGate struct {
	b *Boundaries
}

func (g httpGate) RoundTrip(req *http.Request) (*http.Response, error) {
	return g.b.currentHTTP().RoundTrip(req)
}

type sessionGate struct {
	b *Boundaries
}

func (g sessionGate) Get(key string) (any, bool) {
	return g.b.currentSession().Get(key)
}

func (g sessionGate) Set(key string, value any) {
	g.b.currentSession().Set(key, value)
}

func (g sessionGate) Delete(key string) {
	g.b.currentSession().Delete(key)
}

func (g sessionGate) Keys() []string {
	return g.b.currentSession().Keys()
}
