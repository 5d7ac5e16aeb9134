// internal/testutil/helpers.go
package testutil

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"waybackga/internal/platform/logx"
)

// AssertEqual verifica que dos valores sean iguales.
func AssertEqual(t *testing.T, got, want any, msg string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

// AssertNotEqual verifica que dos valores sean diferentes.
func AssertNotEqual(t *testing.T, got, want any, msg string) {
	t.Helper()
	if got == want {
		t.Errorf("%s: got %v, should not equal %v", msg, got, want)
	}
}

// AssertNil verifica que un valor sea nil.
func AssertNil(t *testing.T, got any, msg string) {
	t.Helper()
	if got != nil {
		t.Errorf("%s: expected nil, got %v", msg, got)
	}
}

// AssertNotNil verifica que un valor no sea nil.
func AssertNotNil(t *testing.T, got any, msg string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected non-nil value", msg)
	}
}

// AssertError verifica que un error no sea nil.
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error, got nil", msg)
	}
}

// AssertNoError verifica que no haya error.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", msg, err)
	}
}

// AssertTrue verifica que una condición sea verdadera.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true, got false", msg)
	}
}

// AssertFalse verifica que una condición sea falsa.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Errorf("%s: expected false, got true", msg)
	}
}

// AssertContains verifica que un slice contenga un elemento o que un string contenga un substring.
func AssertContains(t *testing.T, container any, element string, msg string) {
	t.Helper()

	switch v := container.(type) {
	case []string:
		for _, item := range v {
			if item == element {
				return
			}
		}
		t.Errorf("%s: slice %v does not contain %s", msg, v, element)
	case string:
		if !strings.Contains(v, element) {
			t.Errorf("%s: string %q does not contain %q", msg, v, element)
		}
	default:
		t.Errorf("%s: unsupported type for AssertContains", msg)
	}
}

// AssertLen verifica la longitud de un slice de strings.
func AssertLen(t *testing.T, slice []string, want int, msg string) {
	t.Helper()
	if len(slice) != want {
		t.Errorf("%s: got length %d (%v), want %d", msg, len(slice), slice, want)
	}
}

// Eventually reintenta cond hasta que sea verdadera o venza el plazo.
func Eventually(t *testing.T, within time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("%s: condition not met within %s", msg, within)
}

// NewTestLogger retorna un logger silencioso para tests.
func NewTestLogger() logx.Logger {
	return logx.NewWithWriter(discard{}, logx.LevelError+1)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// UnmarshalJSON is a helper for unmarshaling JSON in tests.
func UnmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
