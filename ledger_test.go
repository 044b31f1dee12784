package seam

import (
	"errors"
	"strings"
	"testing"
)

func TestLedger_ActivateIssuesToken(t *testing.T) {
	l := NewLedger()

	tok, err := l.Activate(KindEnv, "substitute", nil, nil)
	if err != nil {
		t.Fatalf("Activate() error: %v", err)
	}
	if tok.IsZero() {
		t.Error("Activate() returned a zero token")
	}
	if tok.Kind() != KindEnv {
		t.Errorf("token kind = %v, want %v", tok.Kind(), KindEnv)
	}
	if !l.IsActive(KindEnv) {
		t.Error("IsActive(KindEnv) = false after activation")
	}
}

func TestLedger_ActivateNilSubstitute(t *testing.T) {
	l := NewLedger()

	_, err := l.Activate(KindEnv, nil, nil, nil)
	if !errors.Is(err, ErrNilSubstitute) {
		t.Errorf("Activate(nil) error = %v, want ErrNilSubstitute", err)
	}
}

func TestLedger_ConflictPerKind(t *testing.T) {
	l := NewLedger()

	if _, err := l.Activate(KindEnv, "first", nil, nil); err != nil {
		t.Fatalf("first Activate() error: %v", err)
	}

	_, err := l.Activate(KindEnv, "second", nil, nil)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second Activate() error = %v, want ConflictError", err)
	}
	if conflict.Kind != KindEnv {
		t.Errorf("ConflictError.Kind = %v, want %v", conflict.Kind, KindEnv)
	}

	// Other kinds are unaffected by the conflict.
	if _, err := l.Activate(KindFilesystem, "fs", nil, nil); err != nil {
		t.Errorf("Activate(KindFilesystem) error: %v", err)
	}
}

func TestLedger_InstallAndRestoreRun(t *testing.T) {
	l := NewLedger()

	installed, restored := 0, 0
	tok, err := l.Activate(KindHTTP, "sub",
		func() { installed++ },
		func() { restored++ },
	)
	if err != nil {
		t.Fatalf("Activate() error: %v", err)
	}
	if installed != 1 {
		t.Errorf("install ran %d times, want 1", installed)
	}
	if restored != 0 {
		t.Errorf("restore ran %d times before release, want 0", restored)
	}

	if err := l.Deactivate(tok); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}
	if restored != 1 {
		t.Errorf("restore ran %d times after release, want 1", restored)
	}
	if l.IsActive(KindHTTP) {
		t.Error("IsActive(KindHTTP) = true after release")
	}
}

func TestLedger_ReleaseOutOfOrder(t *testing.T) {
	l := NewLedger()

	envTok, err := l.Activate(KindEnv, "env", nil, nil)
	if err != nil {
		t.Fatalf("Activate(env) error: %v", err)
	}
	fsTok, err := l.Activate(KindFilesystem, "fs", nil, nil)
	if err != nil {
		t.Fatalf("Activate(fs) error: %v", err)
	}
	httpTok, err := l.Activate(KindHTTP, "http", nil, nil)
	if err != nil {
		t.Fatalf("Activate(http) error: %v", err)
	}

	// The deepest entry cannot be released while later ones are active.
	err = l.Deactivate(envTok)
	var ordering *OrderingError
	if !errors.As(err, &ordering) {
		t.Fatalf("Deactivate(envTok) error = %v, want OrderingError", err)
	}
	if !strings.Contains(ordering.Reason, "out of order") {
		t.Errorf("OrderingError.Reason = %q, want mention of out of order", ordering.Reason)
	}
	if !strings.Contains(ordering.Reason, string(KindHTTP)) {
		t.Errorf("OrderingError.Reason = %q, want the blocking kind named", ordering.Reason)
	}

	// The failed release changed nothing.
	if got := len(l.Kinds()); got != 3 {
		t.Fatalf("Kinds() has %d entries after failed release, want 3", got)
	}

	// Reverse order succeeds.
	for _, tok := range []Token{httpTok, fsTok, envTok} {
		if err := l.Deactivate(tok); err != nil {
			t.Fatalf("Deactivate(%v) error: %v", tok.Kind(), err)
		}
	}
	if got := len(l.Kinds()); got != 0 {
		t.Errorf("Kinds() has %d entries after full release, want 0", got)
	}
}

func TestLedger_DoubleRelease(t *testing.T) {
	l := NewLedger()

	tok, err := l.Activate(KindSession, "sub", nil, nil)
	if err != nil {
		t.Fatalf("Activate() error: %v", err)
	}
	if err := l.Deactivate(tok); err != nil {
		t.Fatalf("first Deactivate() error: %v", err)
	}

	err = l.Deactivate(tok)
	var ordering *OrderingError
	if !errors.As(err, &ordering) {
		t.Fatalf("second Deactivate() error = %v, want OrderingError", err)
	}
	if ordering.Reason != "no overrides are active" {
		t.Errorf("OrderingError.Reason = %q, want %q", ordering.Reason, "no overrides are active")
	}
}

func TestLedger_ReleaseUnknownToken(t *testing.T) {
	l := NewLedger()

	if _, err := l.Activate(KindEnv, "env", nil, nil); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}

	err := l.Deactivate(Token{id: "not-issued-here", kind: KindEnv})
	var ordering *OrderingError
	if !errors.As(err, &ordering) {
		t.Fatalf("Deactivate(unknown) error = %v, want OrderingError", err)
	}
	if ordering.Reason != "already released or unknown" {
		t.Errorf("OrderingError.Reason = %q, want %q", ordering.Reason, "already released or unknown")
	}
}

func TestLedger_ZeroToken(t *testing.T) {
	l := NewLedger()

	err := l.Deactivate(Token{})
	var ordering *OrderingError
	if !errors.As(err, &ordering) {
		t.Fatalf("Deactivate(zero) error = %v, want OrderingError", err)
	}
	if ordering.Reason != "token was never issued" {
		t.Errorf("OrderingError.Reason = %q, want %q", ordering.Reason, "token was never issued")
	}
}

func TestLedger_ActiveSubstitute(t *testing.T) {
	l := NewLedger()

	if _, err := l.Activate(KindFilesystem, "the-fake-fs", nil, nil); err != nil {
		t.Fatalf("Activate() error: %v", err)
	}

	sub, ok := l.Active(KindFilesystem)
	if !ok {
		t.Fatal("Active(KindFilesystem) reported no override")
	}
	if sub != "the-fake-fs" {
		t.Errorf("Active(KindFilesystem) = %v, want the installed substitute", sub)
	}

	if _, ok := l.Active(KindHTTP); ok {
		t.Error("Active(KindHTTP) reported an override that was never installed")
	}
}

func TestLedger_KindsActivationOrder(t *testing.T) {
	l := NewLedger()

	for _, kind := range []Kind{KindSession, KindEnv, KindHTTP} {
		if _, err := l.Activate(kind, string(kind), nil, nil); err != nil {
			t.Fatalf("Activate(%v) error: %v", kind, err)
		}
	}

	got := l.Kinds()
	want := []Kind{KindSession, KindEnv, KindHTTP}
	if len(got) != len(want) {
		t.Fatalf("Kinds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
