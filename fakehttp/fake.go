package fakehttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/seamkit/seam"
)

// Options configures the HTTP fake.
type Options struct {
	// AllowPassthrough forwards calls that match no rule to Passthrough
	// instead of failing them. Off by default: an unmatched call fails
	// with seam.UnexpectedCallError, keeping tests deterministic.
	AllowPassthrough bool

	// Passthrough is the transport for forwarded calls when
	// AllowPassthrough is set. Defaults to http.DefaultTransport.
	Passthrough http.RoundTripper
}

// Fake is the outbound HTTP boundary fake. It implements
// http.RoundTripper: requests are matched against the programmed rules in
// order, first match wins, and every attempted call is recorded whether it
// matched, failed, or passed through. Safe for concurrent use.
type Fake struct {
	opts Options

	mu    sync.Mutex
	rules []Rule
	calls []Call
}

// New creates a fake with no rules. Until rules are routed, every call
// fails with seam.UnexpectedCallError (or passes through, per opts).
func New(opts Options) *Fake {
	return &Fake{opts: opts}
}

// Route appends a rule replying with resp to requests accepted by m.
// Returns the fake for chaining.
func (f *Fake) Route(m Matcher, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, Rule{Match: m, Reply: resp})
	return f
}

// RouteError appends a rule failing requests accepted by m with err, as a
// simulated network failure. Returns the fake for chaining.
func (f *Fake) RouteError(m Matcher, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, Rule{Match: m, Err: err})
	return f
}

// RoundTrip matches req against the rules in order and serves the first
// accepting rule's reply or error. An unmatched request is still recorded,
// then fails with seam.UnexpectedCallError naming the attempted method and
// URL; it never reaches the real network unless passthrough was enabled.
//
// Note: http.Client wraps transport errors in *url.Error; use errors.As to
// reach the UnexpectedCallError.
func (f *Fake) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		body = data
	}

	call := Call{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   body,
		Rule:   -1,
		path:   req.URL.Path,
	}

	f.mu.Lock()
	var matched *Rule
	for i := range f.rules {
		if f.rules[i].Match.matches(call) {
			call.Matched = true
			call.Rule = i
			matched = &f.rules[i]
			break
		}
	}
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if matched == nil {
		if f.opts.AllowPassthrough {
			// The body was consumed for recording; restore it for the
			// real transport.
			if body != nil {
				req.Body = io.NopCloser(bytes.NewReader(body))
			}
			passthrough := f.opts.Passthrough
			if passthrough == nil {
				passthrough = http.DefaultTransport
			}
			return passthrough.RoundTrip(req)
		}
		return nil, &seam.UnexpectedCallError{Method: call.Method, URL: call.URL}
	}

	if matched.Err != nil {
		return nil, matched.Err
	}
	return matched.Reply.serve(req)
}

// Call records one attempted outbound request.
type Call struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte

	// Matched reports whether any rule accepted the call; Rule is the
	// index of the accepting rule, -1 otherwise.
	Matched bool
	Rule    int

	path string
}

// Calls returns the recorded calls in call order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many recorded calls m accepts.
func (f *Fake) CallCount(m Matcher) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, c := range f.calls {
		if m.matches(c) {
			count++
		}
	}
	return count
}

// Called reports whether any recorded call is accepted by m.
func (f *Fake) Called(m Matcher) bool {
	return f.CallCount(m) > 0
}

// AssertCalled fails the test unless at least one recorded call matches m.
func (f *Fake) AssertCalled(t testing.TB, m Matcher) bool {
	t.Helper()
	if f.Called(m) {
		return true
	}
	t.Errorf("expected a call matching %s, recorded %d call(s)", m.describe(), len(f.Calls()))
	return false
}

// AssertNotCalled fails the test if any recorded call matches m.
func (f *Fake) AssertNotCalled(t testing.TB, m Matcher) bool {
	t.Helper()
	if count := f.CallCount(m); count > 0 {
		t.Errorf("expected no call matching %s, recorded %d", m.describe(), count)
		return false
	}
	return true
}

// Summary describes the fake for state dumps.
func (f *Fake) Summary() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return map[string]any{
		"rules": len(f.rules),
		"calls": len(f.calls),
	}
}
