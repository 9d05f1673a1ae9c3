package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// SessionCall records a single Get or Set against a RecordingSession.
type SessionCall struct {
	Method string
	Name   string
	Value  any
}

// RecordingSession is a wizard.Session stub that serves canned values and
// records every call, so tests can assert exactly what a hook read and wrote.
// Set does not feed back into Get unless Live is true.
type RecordingSession struct {
	mu     sync.Mutex
	Values map[string]any
	Live   bool
	calls  []SessionCall
}

// NewRecordingSession seeds a session with the supplied values.
func NewRecordingSession(values map[string]any) *RecordingSession {
	if values == nil {
		values = map[string]any{}
	}
	return &RecordingSession{Values: values}
}

// Get returns the canned value for name.
func (s *RecordingSession) Get(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, SessionCall{Method: "Get", Name: name})
	return s.Values[name]
}

// Set records the write and, when Live, stores it.
func (s *RecordingSession) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, SessionCall{Method: "Set", Name: name, Value: value})
	if !s.Live {
		return
	}
	if value == nil {
		delete(s.Values, name)
		return
	}
	s.Values[name] = value
}

// Calls returns the recorded calls filtered by method. An empty method
// returns everything.
func (s *RecordingSession) Calls(method string) []SessionCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []SessionCall
	for _, call := range s.calls {
		if method == "" || call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
