// internal/adapters/archive/pages.go
package archive

import (
	"context"
	"strings"

	"waybackga/internal/core/domain"
	"waybackga/internal/platform/httpclient"
	"waybackga/internal/platform/logx"
)

// Pages downloads archived snapshots and live pages as decoded text.
type Pages struct {
	client *httpclient.Client
	host   string
	logger logx.Logger
}

// NewPages creates a page fetcher. An empty host means DefaultHost.
func NewPages(client *httpclient.Client, host string, logger logx.Logger) *Pages {
	if host == "" {
		host = DefaultHost
	}
	return &Pages{
		client: client,
		host:   strings.TrimRight(host, "/"),
		logger: logger.With("component", "pages"),
	}
}

// SnapshotURL is the archived copy of url captured at ts.
func (p *Pages) SnapshotURL(url string, ts domain.Timestamp) string {
	return p.host + "/web/" + ts.String() + "/" + url
}

// FetchSnapshot downloads the capture of url at ts.
func (p *Pages) FetchSnapshot(ctx context.Context, url string, ts domain.Timestamp) (string, error) {
	return p.client.GetText(ctx, p.SnapshotURL(url, ts))
}

// FetchLive downloads the current page. Addresses without a scheme are
// fetched over http and follow redirects from there.
func (p *Pages) FetchLive(ctx context.Context, url string) (string, error) {
	target := LiveURL(url)
	p.logger.Debug("fetching live page", "url", target)
	return p.client.GetText(ctx, target)
}

// LiveURL adds an http scheme to bare host/path addresses.
func LiveURL(url string) string {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return url
	}
	return "http://" + url
}
