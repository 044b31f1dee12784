package fakehttp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/seamkit/seam"
)

// Inbound describes a synthetic request for exercising an HTTP-serving
// component, boundary-level: no listener, no network stack.
type Inbound struct {
	// Method defaults to GET.
	Method string

	// Target is the path or full URL, with httptest.NewRequest semantics.
	// Defaults to "/".
	Target string

	Header http.Header
	Body   []byte

	// Session, when set, is injected into the request context; handlers
	// reach it via seam.SessionFrom.
	Session seam.Session
}

// Build constructs the request. Follows httptest.NewRequest, so a
// malformed Target panics, as it would in any handler test.
func (in Inbound) Build() *http.Request {
	method := in.Method
	if method == "" {
		method = http.MethodGet
	}
	target := in.Target
	if target == "" {
		target = "/"
	}

	var body io.Reader
	if len(in.Body) > 0 {
		body = bytes.NewReader(in.Body)
	}

	req := httptest.NewRequest(method, target, body)
	for key, values := range in.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if in.Session != nil {
		req = req.WithContext(seam.WithSession(req.Context(), in.Session))
	}
	return req
}

// Received captures a handler's reply to a synthetic request.
type Received struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON unmarshals the captured body into v.
func (r Received) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Perform drives handler with the synthetic request and captures the
// reply for assertion.
func Perform(handler http.Handler, in Inbound) Received {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, in.Build())

	result := rr.Result()
	defer result.Body.Close()

	return Received{
		Status: result.StatusCode,
		Header: result.Header,
		Body:   append([]byte(nil), rr.Body.Bytes()...),
	}
}
