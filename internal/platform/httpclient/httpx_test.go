package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"waybackga/internal/platform/errors"
	"waybackga/internal/testutil"
)

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	client, err := New(cfg, testutil.NewTestLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryBackoff = time.Millisecond
	cfg.MaxRetryBackoff = 5 * time.Millisecond
	return cfg
}

func TestNew(t *testing.T) {
	t.Run("applies defaults for zero values", func(t *testing.T) {
		client := newTestClient(t, Config{})

		testutil.AssertEqual(t, client.config.Timeout, 30*time.Second, "default timeout")
		testutil.AssertEqual(t, client.config.UserAgent, DefaultUserAgent, "default user agent")
		testutil.AssertEqual(t, client.config.RateLimitBurst, 1, "default burst")
		testutil.AssertTrue(t, client.rateLimiter == nil, "no limiter without rate")
	})

	t.Run("creates rate limiter when configured", func(t *testing.T) {
		client := newTestClient(t, Config{RateLimit: 10, RateLimitBurst: 5})
		testutil.AssertNotNil(t, client.rateLimiter, "rate limiter should be created")
	})

	t.Run("rejects malformed proxy", func(t *testing.T) {
		_, err := New(Config{ProxyURL: "://bad"}, testutil.NewTestLogger())
		testutil.AssertTrue(t, errors.IsInvalidInput(err), "invalid proxy is invalid input")
	})
}

func TestClient_Headers(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	client := newTestClient(t, fastConfig())
	_, err := client.GetText(context.Background(), server.URL)

	testutil.AssertNoError(t, err, "GetText")
	testutil.AssertEqual(t, gotUA, DefaultUserAgent, "browser user agent sent")
	testutil.AssertEqual(t, gotLang, "en-US,en;q=0.9", "accept-language sent")
}

func TestClient_Retry(t *testing.T) {
	t.Run("retries on 503 status", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		body, err := newTestClient(t, fastConfig()).GetText(context.Background(), server.URL)
		testutil.AssertNoError(t, err, "should succeed after retries")
		testutil.AssertEqual(t, body, "ok", "body")
		testutil.AssertEqual(t, calls.Load(), int32(3), "three attempts")
	})

	t.Run("does not retry on 429", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestClient(t, fastConfig()).Get(context.Background(), server.URL)
		testutil.AssertTrue(t, errors.IsRateLimit(err), "429 surfaces as rate limit")
		testutil.AssertEqual(t, calls.Load(), int32(1), "429 is not retried")
	})

	t.Run("does not retry on 404", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(t, fastConfig()).Get(context.Background(), server.URL)
		testutil.AssertTrue(t, errors.IsNotFound(err), "404 surfaces as not found")
		testutil.AssertEqual(t, calls.Load(), int32(1), "single attempt")
	})

	t.Run("exhausts retries and returns error", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		cfg := fastConfig()
		cfg.MaxRetries = 1
		_, err := newTestClient(t, cfg).Get(context.Background(), server.URL)
		testutil.AssertTrue(t, errors.IsServiceUnavailable(err), "502 surfaces as unavailable")
		testutil.AssertEqual(t, calls.Load(), int32(2), "initial attempt plus one retry")
	})
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := newTestClient(t, fastConfig()).Get(ctx, server.URL)
	testutil.AssertError(t, err, "cancelled request should fail")
	testutil.AssertTrue(t, time.Since(start) < 150*time.Millisecond, "should not wait for retries")
}

func TestClient_GetText(t *testing.T) {
	t.Run("rejects non-text content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
		}))
		defer server.Close()

		_, err := newTestClient(t, fastConfig()).GetText(context.Background(), server.URL)
		testutil.AssertTrue(t, errors.IsInvalidResponse(err), "binary body is invalid response")
	})

	t.Run("decodes declared charset", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			w.Write([]byte("caf\xe9 UA-12345-1"))
		}))
		defer server.Close()

		body, err := newTestClient(t, fastConfig()).GetText(context.Background(), server.URL)
		testutil.AssertNoError(t, err, "GetText")
		testutil.AssertEqual(t, body, "café UA-12345-1", "latin-1 decoded to utf-8")
	})

	t.Run("caps body size", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write([]byte("0123456789"))
		}))
		defer server.Close()

		cfg := fastConfig()
		cfg.MaxBodyBytes = 4
		body, err := newTestClient(t, cfg).GetText(context.Background(), server.URL)
		testutil.AssertNoError(t, err, "GetText")
		testutil.AssertEqual(t, body, "0123", "truncated body")
	})
}

func TestClient_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	cfg := fastConfig()
	cfg.RateLimit = 20
	client := newTestClient(t, cfg)

	start := time.Now()
	for i := 0; i < 4; i++ {
		_, err := client.GetText(context.Background(), server.URL)
		testutil.AssertNoError(t, err, "GetText")
	}
	testutil.AssertTrue(t, time.Since(start) >= 140*time.Millisecond, "four requests at 20 rps take at least 150ms minus slack")
}

func TestIsTextContent(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"", true},
		{"text/html; charset=utf-8", true},
		{"text/plain", true},
		{"application/json", true},
		{"application/xhtml+xml", true},
		{"image/png", false},
		{"application/octet-stream", false},
		{";;;", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			testutil.AssertEqual(t, IsTextContent(tt.contentType), tt.want, "text content")
		})
	}
}
