package errors

import (
	"fmt"
	"net/http"
	"testing"

	"waybackga/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		baseErr := New("base error")
		wrapped := Wrap(baseErr, "cdx query")

		testutil.AssertNotNil(t, wrapped, "wrapped error should not be nil")
		testutil.AssertTrue(t, Is(wrapped, baseErr), "should unwrap to base error")
		testutil.AssertEqual(t, wrapped.Error(), "cdx query: base error", "message should include context")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		testutil.AssertTrue(t, Wrap(nil, "context") == nil, "wrapping nil should return nil")
		testutil.AssertTrue(t, Wrapf(nil, "context %s", "x") == nil, "wrapf of nil should return nil")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		wrapped := Wrap(Wrap(ErrRateLimit, "snapshot 20120101000000"), "example.com")

		testutil.AssertTrue(t, IsRateLimit(wrapped), "should unwrap to sentinel")
		testutil.AssertEqual(t, wrapped.Error(), "example.com: snapshot 20120101000000: rate limit exceeded", "should show full chain")
	})
}

func TestAs(t *testing.T) {
	wrapped := Wrap(&wrappedError{msg: "inner", cause: ErrTimeout}, "outer")

	var target *wrappedError
	testutil.AssertTrue(t, As(wrapped, &target), "should find wrappedError type")
	testutil.AssertEqual(t, target.msg, "outer", "first match in the chain is the outer wrapper")

	var none *wrappedError
	testutil.AssertFalse(t, As(New("plain"), &none), "plain error is not a wrappedError")
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusOK, nil},
		{http.StatusNoContent, nil},
		{http.StatusTooManyRequests, ErrRateLimit},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusGone, ErrNotFound},
		{http.StatusGatewayTimeout, ErrTimeout},
		{http.StatusRequestTimeout, ErrTimeout},
		{http.StatusBadGateway, ErrServiceUnavailable},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
		{http.StatusForbidden, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			testutil.AssertEqual(t, FromStatus(tt.code), tt.want, "sentinel for status")
		})
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(error) bool
		err  error
	}{
		{"IsTimeout", IsTimeout, ErrTimeout},
		{"IsRateLimit", IsRateLimit, ErrRateLimit},
		{"IsNotFound", IsNotFound, ErrNotFound},
		{"IsInvalidInput", IsInvalidInput, ErrInvalidInput},
		{"IsConnectionFailed", IsConnectionFailed, ErrConnectionFailed},
		{"IsServiceUnavailable", IsServiceUnavailable, ErrServiceUnavailable},
		{"IsInvalidResponse", IsInvalidResponse, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertTrue(t, tt.pred(tt.err), "direct sentinel")
			testutil.AssertTrue(t, tt.pred(Wrap(tt.err, "context")), "wrapped sentinel")
			testutil.AssertFalse(t, tt.pred(New("other")), "different error")
			testutil.AssertFalse(t, tt.pred(nil), "nil error")
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{Wrap(ErrRateLimit, "HTTP 429"), "rate_limit"},
		{Wrap(ErrTimeout, "deadline"), "timeout"},
		{Wrap(ErrConnectionFailed, "dial tcp"), "connection"},
		{ErrNotFound, "not_found"},
		{FromStatus(http.StatusBadGateway), "unavailable"},
		{ErrInvalidResponse, "invalid_response"},
		{ErrInvalidInput, "invalid_input"},
		{New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, Kind(tt.err), tt.want, "kind")
		})
	}
}

func TestJoin(t *testing.T) {
	err1 := New("error 1")
	err2 := New("error 2")

	joined := Join(err1, nil, err2)
	testutil.AssertTrue(t, Is(joined, err1), "should find first error")
	testutil.AssertTrue(t, Is(joined, err2), "should find second error")
	testutil.AssertTrue(t, Join(nil, nil) == nil, "all-nil join is nil")
}

func ExampleWrap() {
	wrapped := Wrap(ErrRateLimit, "index query")
	fmt.Println(wrapped.Error())
	// Output: index query: rate limit exceeded
}

func ExampleFromStatus() {
	if IsRateLimit(FromStatus(http.StatusTooManyRequests)) {
		fmt.Println("slow down")
	}
	// Output: slow down
}
