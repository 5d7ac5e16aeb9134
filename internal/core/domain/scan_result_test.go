// internal/core/domain/scan_result_test.go
package domain

import (
	"errors"
	"strings"
	"testing"

	"waybackga/internal/testutil"
)

func TestPipelineRequest_IndexQuery(t *testing.T) {
	req := PipelineRequest{
		URL:       "example.com",
		Start:     "20120101000000",
		End:       "20130101000000",
		Frequency: FrequencyMonthly,
		Limit:     13,
	}

	q := req.IndexQuery()
	testutil.AssertEqual(t, q.URL, "example.com", "url")
	testutil.AssertEqual(t, q.From, req.Start, "from")
	testutil.AssertEqual(t, q.To, req.End, "to")
	testutil.AssertEqual(t, q.Collapse, 6, "monthly collapse")
	testutil.AssertEqual(t, q.Limit, 13, "limit")

	plain := PipelineRequest{URL: "example.com", Limit: -100}.IndexQuery()
	testutil.AssertEqual(t, plain.Collapse, 0, "no frequency, no collapse")
}

func TestBatchResult(t *testing.T) {
	b := NewBatchResult()
	testutil.AssertTrue(t, b.ID != "", "batch id assigned")
	testutil.AssertNotEqual(t, b.ID, NewBatchResult().ID, "batch ids unique")

	ok := URLResult{URL: "a.com", Archived: NewCodeIntervals()}
	ok.Archived[ClassLegacy]["UA-12345-1"] = NewInterval("20120101000000")
	failed := URLResult{URL: "b.com", Err: errors.New("index down")}

	b.Results = append(b.Results, ok, failed)
	b.AddWarning("b.com", "index down")
	b.Finalize()

	testutil.AssertEqual(t, len(b.Completed()), 1, "completed runs")
	testutil.AssertEqual(t, b.Completed()[0].URL, "a.com", "completed url")
	testutil.AssertEqual(t, b.TotalCodes(), 1, "total codes")
	testutil.AssertTrue(t, b.Duration >= 0, "duration set")
	testutil.AssertTrue(t, strings.Contains(b.Summary(), "completed=1"), "summary")
}

func TestErrorsFormatting(t *testing.T) {
	cfgErr := &ConfigurationError{Field: "start", Value: "bad", Err: &MalformedDateError{Input: "bad", Reason: "nope"}}
	testutil.AssertContains(t, cfgErr.Error(), `invalid start "bad"`, "config error message")

	var mde *MalformedDateError
	testutil.AssertTrue(t, errors.As(cfgErr, &mde), "config error unwraps to malformed date")

	fe := &FetchError{URL: "example.com", Timestamp: "20120101000000", Err: errors.New("timeout")}
	testutil.AssertEqual(t, fe.Error(), "fetch example.com at 20120101000000: timeout", "fetch error message")
	testutil.AssertEqual(t, (&FetchError{URL: "example.com", Err: errors.New("x")}).Error(), "fetch example.com: x", "live fetch message")
}
