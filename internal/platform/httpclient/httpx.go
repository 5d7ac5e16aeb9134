// Package httpclient provides the HTTP client used for the archive index,
// archived snapshots and live pages: browser headers, retry with backoff on
// transient failures, optional client-side rate limiting and charset decoding.
package httpclient

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"waybackga/internal/platform/errors"
	"waybackga/internal/platform/logx"
)

// DefaultUserAgent identifies as a desktop browser; the archive serves bot
// user agents differently.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/75.0.3770.142 Safari/537.36"

// Client is an HTTP client with retry logic, rate limiting and timeout support.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the per-request timeout.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for transient
	// failures (network errors, 502/503/504). 429 is never retried.
	// Default: 2
	MaxRetries int

	// RetryBackoff is the initial backoff, doubled on each retry.
	// Default: 1 second
	RetryBackoff time.Duration

	// MaxRetryBackoff caps the backoff.
	// Default: 15 seconds
	MaxRetryBackoff time.Duration

	// UserAgent is the User-Agent header value.
	UserAgent string

	// Headers are sent with every request, after User-Agent.
	Headers map[string]string

	// RateLimit is the maximum requests per second. 0 disables it.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// ProxyURL routes every request through an HTTP(S) proxy when set.
	ProxyURL string

	// MaxBodyBytes caps how much of a body is read. 0 means 10 MiB.
	MaxBodyBytes int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      2,
		RetryBackoff:    1 * time.Second,
		MaxRetryBackoff: 15 * time.Second,
		UserAgent:       DefaultUserAgent,
		Headers:         DefaultHeaders(),
		RateLimitBurst:  1,
		MaxBodyBytes:    10 << 20,
	}
}

// DefaultHeaders is the fixed browser-like header set sent with every request.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) (*Client, error) {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = 1 * time.Second
	}
	if config.MaxRetryBackoff == 0 {
		config.MaxRetryBackoff = 15 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Headers == nil {
		config.Headers = DefaultHeaders()
	}
	if config.RateLimitBurst == 0 {
		config.RateLimitBurst = 1
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 10 << 20
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.ProxyURL != "" {
		proxy, err := url.Parse(config.ProxyURL)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "proxy url %q", config.ProxyURL)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: config.Timeout, Transport: transport},
		rateLimiter: limiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}, nil
}

// Get performs a GET request with retries. A non-nil response always has a
// 2xx status; any other status is returned as an error wrapping the matching
// sentinel from platform/errors.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, errors.Wrap(err, "rate limit wait failed")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "build request for %s: %v", rawURL, err)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		for key, value := range c.config.Headers {
			req.Header.Set(key, value)
		}

		c.logger.Debug("HTTP request", "url", rawURL, "attempt", attempt+1)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			lastErr = classifyTransportError(err)
			if ctx.Err() != nil {
				return nil, errors.Wrapf(lastErr, "GET %s", rawURL)
			}
			c.logger.Debug("HTTP request failed",
				"url", rawURL,
				"attempt", attempt+1,
				"error", err.Error(),
				"duration_ms", duration.Milliseconds(),
			)
			if attempt >= c.config.MaxRetries {
				break
			}
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, errors.Wrap(err, "backoff interrupted")
			}
			continue
		}

		c.logger.Debug("HTTP response received",
			"url", rawURL,
			"status", resp.StatusCode,
			"duration_ms", duration.Milliseconds(),
		)

		statusErr := errors.FromStatus(resp.StatusCode)
		if statusErr == nil {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = errors.Wrapf(statusErr, "HTTP %d", resp.StatusCode)

		if !isRetryableStatus(resp.StatusCode) || attempt >= c.config.MaxRetries {
			break
		}
		if err := c.backoff(ctx, attempt); err != nil {
			return nil, errors.Wrap(err, "backoff interrupted")
		}
	}

	return nil, errors.Wrapf(lastErr, "GET %s", rawURL)
}

// GetText fetches rawURL and returns its body decoded to UTF-8. Bodies that
// are not textual fail with ErrInvalidResponse.
func (c *Client) GetText(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !IsTextContent(contentType) {
		return "", errors.Wrapf(errors.ErrInvalidResponse, "GET %s: content type %q", rawURL, contentType)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, c.config.MaxBodyBytes), contentType)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidResponse, "GET %s: charset: %v", rawURL, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.Wrapf(classifyTransportError(err), "GET %s: read body", rawURL)
	}
	return string(body), nil
}

// IsTextContent reports whether a Content-Type header denotes a textual body.
// A missing header is treated as text.
func IsTextContent(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/json",
		mediaType == "application/xhtml+xml",
		mediaType == "application/xml",
		mediaType == "application/javascript":
		return true
	default:
		return false
	}
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// classifyTransportError maps low-level failures onto the platform sentinels.
func classifyTransportError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrTimeout, err.Error())
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.ErrTimeout, err.Error())
	}
	if stderrors.Is(err, context.Canceled) {
		return err
	}
	return errors.Wrap(errors.ErrConnectionFailed, err.Error())
}

// backoff waits RetryBackoff * 2^attempt, capped, or until ctx is done.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	backoff := c.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempt)))
	if backoff > c.config.MaxRetryBackoff {
		backoff = c.config.MaxRetryBackoff
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, rate_limit=%.1f/s}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.config.RateLimit,
	)
}
