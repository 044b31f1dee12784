package fakehttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Matcher selects outbound requests by method and URL, with optional
// header and body predicates. All set fields must accept the request.
type Matcher struct {
	// Method matches exactly. Empty matches every method.
	Method string

	// URL matches the full URL when the pattern carries a scheme
	// ("https://api.internal/health"), otherwise the request path
	// ("/health"). Empty matches every URL.
	URL string

	// Header, when set, must accept the request headers.
	Header func(http.Header) bool

	// Body, when set, must accept the request body bytes.
	Body func([]byte) bool
}

// Get matches GET requests to url.
func Get(url string) Matcher {
	return Matcher{Method: http.MethodGet, URL: url}
}

// Post matches POST requests to url.
func Post(url string) Matcher {
	return Matcher{Method: http.MethodPost, URL: url}
}

// Put matches PUT requests to url.
func Put(url string) Matcher {
	return Matcher{Method: http.MethodPut, URL: url}
}

// Delete matches DELETE requests to url.
func Delete(url string) Matcher {
	return Matcher{Method: http.MethodDelete, URL: url}
}

// Any matches every method on url.
func Any(url string) Matcher {
	return Matcher{URL: url}
}

// Request matches an arbitrary method and url.
func Request(method, url string) Matcher {
	return Matcher{Method: method, URL: url}
}

// matches reports whether the matcher accepts a recorded call.
func (m Matcher) matches(c Call) bool {
	if m.Method != "" && m.Method != c.Method {
		return false
	}
	if m.URL != "" {
		if strings.Contains(m.URL, "://") {
			if m.URL != c.URL {
				return false
			}
		} else if m.URL != c.path {
			return false
		}
	}
	if m.Header != nil && !m.Header(c.Header) {
		return false
	}
	if m.Body != nil && !m.Body(c.Body) {
		return false
	}
	return true
}

// describe renders the matcher for assertion failure messages.
func (m Matcher) describe() string {
	method := m.Method
	if method == "" {
		method = "ANY"
	}
	url := m.URL
	if url == "" {
		url = "*"
	}
	return method + " " + url
}

// Response is a programmed reply. Status 0 serves as 200.
type Response struct {
	Status int
	Header http.Header
	Body   []byte

	jsonValue   any
	marshalJSON bool
	contentType string
}

// JSON builds a response carrying v marshaled as JSON, with
// Content-Type: application/json unless the rule sets its own.
func JSON(status int, v any) Response {
	return Response{
		Status:      status,
		jsonValue:   v,
		marshalJSON: true,
		contentType: "application/json",
	}
}

// Text builds a plain-text response with
// Content-Type: text/plain; charset=utf-8 unless the rule sets its own.
func Text(status int, body string) Response {
	return Response{
		Status:      status,
		Body:        []byte(body),
		contentType: "text/plain; charset=utf-8",
	}
}

// Raw builds a response from explicit parts with no content-type
// defaulting.
func Raw(status int, header http.Header, body []byte) Response {
	return Response{Status: status, Header: header, Body: body}
}

// serve materializes the programmed reply for req.
func (r Response) serve(req *http.Request) (*http.Response, error) {
	body := r.Body
	if r.marshalJSON {
		data, err := json.Marshal(r.jsonValue)
		if err != nil {
			return nil, fmt.Errorf("marshal JSON response: %w", err)
		}
		body = data
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	header := make(http.Header, len(r.Header)+1)
	for key, values := range r.Header {
		for _, value := range values {
			header.Add(key, value)
		}
	}
	if r.contentType != "" && header.Get("Content-Type") == "" {
		header.Set("Content-Type", r.contentType)
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          newBodyReader(body),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

// Rule pairs a matcher with a programmed reply or a simulated transport
// error. Exactly one of Reply and Err takes effect.
type Rule struct {
	Match Matcher
	Reply Response
	Err   error
}

// newBodyReader wraps body bytes as a response body.
func newBodyReader(body []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(body))
}
