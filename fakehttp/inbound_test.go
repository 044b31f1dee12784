package fakehttp

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/seamkit/seam"
	"github.com/seamkit/seam/fakesession"
)

func TestPerform_BasicHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"healthy"}`)
	})

	rec := Perform(handler, Inbound{Method: http.MethodGet, Target: "/health"})

	if rec.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Status, http.StatusOK)
	}
	if got := rec.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want %q", got, "application/json")
	}
	if string(rec.Body) != `{"status":"healthy"}` {
		t.Errorf("Body = %q, want %q", rec.Body, `{"status":"healthy"}`)
	}
}

func TestPerform_Defaults(t *testing.T) {
	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	})

	Perform(handler, Inbound{})

	if gotMethod != http.MethodGet {
		t.Errorf("handler saw method %q, want GET", gotMethod)
	}
	if gotPath != "/" {
		t.Errorf("handler saw path %q, want /", gotPath)
	}
}

func TestPerform_BodyAndHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Echoed-Trace", r.Header.Get("X-Trace"))
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	})

	header := http.Header{}
	header.Set("X-Trace", "trace-123")
	rec := Perform(handler, Inbound{
		Method: http.MethodPost,
		Target: "/submit",
		Header: header,
		Body:   []byte("payload"),
	})

	if rec.Status != http.StatusCreated {
		t.Errorf("Status = %d, want %d", rec.Status, http.StatusCreated)
	}
	if string(rec.Body) != "payload" {
		t.Errorf("Body = %q, want %q", rec.Body, "payload")
	}
	if got := rec.Header.Get("X-Echoed-Trace"); got != "trace-123" {
		t.Errorf("X-Echoed-Trace = %q, want %q", got, "trace-123")
	}
}

func TestPerform_SessionInjection(t *testing.T) {
	session := fakesession.New(fakesession.Options{
		Seed: map[string]any{"user_id": "u-42"},
	})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := seam.SessionFrom(r.Context())
		if !ok {
			http.Error(w, "no session", http.StatusInternalServerError)
			return
		}
		userID, _ := s.Get("user_id")
		s.Set("last_seen_path", r.URL.Path)
		fmt.Fprintf(w, "hello %v", userID)
	})

	rec := Perform(handler, Inbound{Target: "/profile", Session: session})

	if rec.Status != http.StatusOK {
		t.Fatalf("Status = %d, want %d (body: %s)", rec.Status, http.StatusOK, rec.Body)
	}
	if string(rec.Body) != "hello u-42" {
		t.Errorf("Body = %q, want %q", rec.Body, "hello u-42")
	}

	// Handler writes land in the fake, where the test can assert on them.
	if value, ok := session.Get("last_seen_path"); !ok || value != "/profile" {
		t.Errorf("session last_seen_path = %v, %v, want %q, true", value, ok, "/profile")
	}
}

func TestPerform_NoSessionByDefault(t *testing.T) {
	var found bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = seam.SessionFrom(r.Context())
	})

	Perform(handler, Inbound{})

	if found {
		t.Error("SessionFrom found a session on a request built without one")
	}
}

func TestReceived_JSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"alpha","count":3}`)
	})

	rec := Perform(handler, Inbound{Target: "/widget"})

	var got struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := rec.JSON(&got); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if got.Name != "alpha" || got.Count != 3 {
		t.Errorf("decoded = %+v, want {alpha 3}", got)
	}
}
