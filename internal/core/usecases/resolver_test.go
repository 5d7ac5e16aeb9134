// internal/core/usecases/resolver_test.go
package usecases

import (
	"errors"
	"testing"
	"time"

	"waybackga/internal/core/domain"
	"waybackga/internal/testutil"
)

var fixedNow = time.Date(2020, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestResolveSnapshotCount(t *testing.T) {
	tests := []struct {
		name     string
		freq     domain.Frequency
		start    domain.Timestamp
		end      domain.Timestamp
		expected int
	}{
		{"yearly one year", domain.FrequencyYearly, "20120101000000", "20130101000000", 2},
		{"monthly partial month", domain.FrequencyMonthly, "20120101000000", "20121205000000", 12},
		{"daily month", domain.FrequencyDaily, "20120101000000", "20120131000000", 31},
		{"hourly day", domain.FrequencyHourly, "20120101000000", "20120101230000", 24},
		{"same instant", domain.FrequencyDaily, "20120101000000", "20120101000000", 1},
		{"yearly short of a year", domain.FrequencyYearly, "20120601000000", "20130531000000", 1},
		{"monthly clamps day", domain.FrequencyMonthly, "20120131000000", "20120229000000", 2},
		{"monthly not yet a month", domain.FrequencyMonthly, "20120131000000", "20120228000000", 1},
		{"daily partial day", domain.FrequencyDaily, "20120101120000", "20120102110000", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ResolveSnapshotCount(tt.freq, tt.start, tt.end, fixedNow)
			testutil.AssertNoError(t, err, "resolve")
			testutil.AssertEqual(t, n, tt.expected, "count")
		})
	}
}

func TestResolveSnapshotCount_EndDefaultsToNow(t *testing.T) {
	n, err := ResolveSnapshotCount(domain.FrequencyYearly, "20150615120000", "", fixedNow)
	testutil.AssertNoError(t, err, "resolve")
	testutil.AssertEqual(t, n, 6, "2015..2020 inclusive")
}

func TestResolveSnapshotCount_Errors(t *testing.T) {
	tests := []struct {
		name    string
		freq    domain.Frequency
		start   domain.Timestamp
		end     domain.Timestamp
		wantErr error
	}{
		{"frequency without start", domain.FrequencyMonthly, "", "20130101000000", domain.ErrFrequencyNoStart},
		{"unknown frequency", domain.Frequency("weekly"), "20120101000000", "", nil},
		{"no frequency", domain.FrequencyNone, "20120101000000", "", nil},
		{"start after end", domain.FrequencyDaily, "20130101000000", "20120101000000", domain.ErrStartAfterEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSnapshotCount(tt.freq, tt.start, tt.end, fixedNow)

			var cfgErr *domain.ConfigurationError
			testutil.AssertTrue(t, errors.As(err, &cfgErr), "configuration error")
			if tt.wantErr != nil {
				testutil.AssertTrue(t, errors.Is(err, tt.wantErr), "wrapped sentinel")
			}
		})
	}
}

func TestResolveIndexQuery(t *testing.T) {
	t.Run("frequency derives limit and collapse", func(t *testing.T) {
		req := domain.PipelineRequest{
			URL:       "example.com",
			Start:     "20120101000000",
			End:       "20121205000000",
			Frequency: domain.FrequencyMonthly,
			Limit:     -100,
		}
		q, err := ResolveIndexQuery(req, fixedNow)
		testutil.AssertNoError(t, err, "resolve")
		testutil.AssertEqual(t, q.Limit, 12, "limit overridden by count")
		testutil.AssertEqual(t, q.Collapse, 6, "monthly collapse")
		testutil.AssertEqual(t, q.From, domain.Timestamp("20120101000000"), "from")
		testutil.AssertEqual(t, q.To, domain.Timestamp("20121205000000"), "to")
	})

	t.Run("explicit limit without frequency", func(t *testing.T) {
		req := domain.PipelineRequest{URL: "example.com", Limit: -50}
		q, err := ResolveIndexQuery(req, fixedNow)
		testutil.AssertNoError(t, err, "resolve")
		testutil.AssertEqual(t, q.Limit, -50, "explicit limit")
		testutil.AssertEqual(t, q.Collapse, 0, "no collapse")
	})

	t.Run("unbounded query", func(t *testing.T) {
		q, err := ResolveIndexQuery(domain.PipelineRequest{URL: "example.com"}, fixedNow)
		testutil.AssertNoError(t, err, "resolve")
		testutil.AssertEqual(t, q.Limit, 0, "no limit")
	})

	t.Run("frequency without start", func(t *testing.T) {
		req := domain.PipelineRequest{URL: "example.com", Frequency: domain.FrequencyDaily}
		_, err := ResolveIndexQuery(req, fixedNow)
		testutil.AssertTrue(t, domain.IsConfigurationError(err), "configuration error")
	})
}

func TestMonthsBetween(t *testing.T) {
	at := func(ts domain.Timestamp) time.Time {
		tm, err := ts.Time()
		if err != nil {
			t.Fatalf("bad fixture %s: %v", ts, err)
		}
		return tm
	}

	testutil.AssertEqual(t, monthsBetween(at("20120115000000"), at("20120214000000")), 0, "one day short")
	testutil.AssertEqual(t, monthsBetween(at("20120115000000"), at("20120215000000")), 1, "exact month")
	testutil.AssertEqual(t, monthsBetween(at("20111215000000"), at("20130115000000")), 13, "across years")
	testutil.AssertEqual(t, monthsBetween(at("20120331000000"), at("20120430000000")), 1, "clamped to month end")
}
