// Package archive talks to the web archive: the CDX capture index and the
// archived snapshots themselves, plus the live page of each address.
package archive

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"waybackga/internal/core/domain"
	"waybackga/internal/platform/httpclient"
	"waybackga/internal/platform/logx"
)

// DefaultHost is the public archive, used for both the index and snapshots.
const DefaultHost = "https://web.archive.org"

const cdxPath = "/cdx/search/cdx"

// timestampRun matches every 14-digit capture time in an index body,
// whatever the surrounding JSON shape.
var timestampRun = regexp.MustCompile(`\d{14}`)

// IndexClient queries the CDX index for successful captures of an address.
type IndexClient struct {
	client *httpclient.Client
	host   string
	logger logx.Logger
}

// NewIndexClient creates an index client. An empty host means DefaultHost.
func NewIndexClient(client *httpclient.Client, host string, logger logx.Logger) *IndexClient {
	if host == "" {
		host = DefaultHost
	}
	return &IndexClient{
		client: client,
		host:   strings.TrimRight(host, "/"),
		logger: logger.With("component", "index"),
	}
}

// QueryURL builds the index request for q. Parameters keep the archive's
// documented order: url, matchType, filter, fl, output, then the optional
// collapse, limit, from and to.
func (c *IndexClient) QueryURL(q domain.IndexQuery) string {
	var b strings.Builder
	b.WriteString(c.host)
	b.WriteString(cdxPath)
	b.WriteString("?url=")
	b.WriteString(url.QueryEscape(q.URL))
	b.WriteString("&matchType=domain&filter=statuscode:200&fl=timestamp&output=JSON")
	if q.Collapse > 0 {
		b.WriteString("&collapse=timestamp:")
		b.WriteString(strconv.Itoa(q.Collapse))
	}
	if q.Limit != 0 {
		b.WriteString("&limit=")
		b.WriteString(strconv.Itoa(q.Limit))
	}
	if !q.From.IsZero() {
		b.WriteString("&from=")
		b.WriteString(q.From.String())
	}
	if !q.To.IsZero() {
		b.WriteString("&to=")
		b.WriteString(q.To.String())
	}
	return b.String()
}

// Timestamps runs the query and returns the capture times sorted ascending
// with duplicates removed. Transport failures, including a rate limit, are
// returned as is.
func (c *IndexClient) Timestamps(ctx context.Context, q domain.IndexQuery) ([]domain.Timestamp, error) {
	endpoint := c.QueryURL(q)
	c.logger.Debug("querying index", "url", q.URL, "limit", q.Limit, "collapse", q.Collapse)

	body, err := c.client.GetText(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	stamps, rejected := ParseTimestamps(body)
	for _, r := range rejected {
		c.logger.Debug("skipping invalid timestamp", "url", q.URL, "value", r)
	}
	c.logger.Debug("index answered", "url", q.URL, "timestamps", len(stamps), "rejected", len(rejected))
	return stamps, nil
}

// ParseTimestamps extracts every 14-digit run from body, sorted ascending
// and deduplicated. Runs that are not a calendar instant, such as
// 99999999999999, are left out and returned in rejected.
func ParseTimestamps(body string) (stamps []domain.Timestamp, rejected []string) {
	runs := timestampRun.FindAllString(body, -1)
	stamps = make([]domain.Timestamp, 0, len(runs))
	if len(runs) == 0 {
		return stamps, nil
	}
	sort.Strings(runs)

	for i, r := range runs {
		if i > 0 && r == runs[i-1] {
			continue
		}
		ts, err := domain.ParseTimestamp(r)
		if err != nil {
			rejected = append(rejected, r)
			continue
		}
		stamps = append(stamps, ts)
	}
	return stamps, rejected
}
