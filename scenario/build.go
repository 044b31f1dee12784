package scenario

import (
	"errors"
	"net/http"
	"strings"

	"github.com/seamkit/seam"
	"github.com/seamkit/seam/fakeenv"
	"github.com/seamkit/seam/fakefs"
	"github.com/seamkit/seam/fakehttp"
	"github.com/seamkit/seam/fakesession"
)

// Fakes bundles the typed fakes built from a fixture, for rule and
// assertion access after activation. Sections absent from the fixture are
// nil.
type Fakes struct {
	Env     *fakeenv.Fake
	FS      *fakefs.Fake
	HTTP    *fakehttp.Fake
	Session *fakesession.Fake
}

// Build constructs the configured fakes and a controller ready to
// activate them against b. The fixture is validated first, so a broken
// fixture fails before anything is constructed.
func (c *Config) Build(b *seam.Boundaries) (*seam.Controller, *Fakes, error) {
	if c == nil {
		return nil, nil, ErrNilConfig
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	ctl := seam.NewController(b)
	fakes := &Fakes{}

	if c.Env != nil {
		fakes.Env = fakeenv.New(fakeenv.Options{
			Vars:        c.Env.Vars,
			Unset:       c.Env.Unset,
			InheritReal: c.Env.InheritReal,
			ClearPrefix: c.Env.ClearPrefix,
		})
		ctl.WithEnv(fakes.Env)
	}

	if c.Filesystem != nil {
		files := make(map[string][]byte, len(c.Filesystem.Files))
		for path, content := range c.Filesystem.Files {
			files[path] = []byte(content)
		}
		fakes.FS = fakefs.New(fakefs.Options{
			Files:   files,
			Dirs:    c.Filesystem.Dirs,
			Archive: c.Filesystem.archiveData,
		})
		ctl.WithFS(fakes.FS)
	}

	if c.HTTP != nil {
		fakes.HTTP = fakehttp.New(fakehttp.Options{
			AllowPassthrough: c.HTTP.AllowPassthrough,
		})
		for _, rule := range c.HTTP.Rules {
			m := fakehttp.Matcher{
				Method: strings.ToUpper(rule.Method),
				URL:    rule.URL,
			}
			switch {
			case rule.Error != "":
				fakes.HTTP.RouteError(m, errors.New(rule.Error))
			case rule.JSON != nil:
				fakes.HTTP.Route(m, withHeaders(fakehttp.JSON(rule.Status, rule.JSON), rule.Headers))
			default:
				fakes.HTTP.Route(m, withHeaders(fakehttp.Raw(rule.Status, nil, []byte(rule.Body)), rule.Headers))
			}
		}
		ctl.WithHTTP(fakes.HTTP)
	}

	if c.Session != nil {
		fakes.Session = fakesession.New(fakesession.Options{
			Seed: c.Session.Values,
		})
		ctl.WithSession(fakes.Session)
	}

	return ctl, fakes, nil
}

// withHeaders applies fixture headers to a programmed response.
func withHeaders(resp fakehttp.Response, headers map[string]string) fakehttp.Response {
	if len(headers) == 0 {
		return resp
	}
	h := make(http.Header, len(headers))
	for key, value := range headers {
		h.Set(key, value)
	}
	resp.Header = h
	return resp
}
