// internal/platform/ui/presenter_test.go
package ui

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
	"waybackga/internal/testutil"
)

func eventAt(typ ports.EventType, url string, at time.Time) ports.Event {
	return ports.Event{Type: typ, URL: url, Timestamp: at}
}

func replayURL(n ports.Notifier, url string, snapshots, failed, codes int) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n.Notify(eventAt(ports.EventURLStarted, url, t0))
	idx := eventAt(ports.EventURLIndexed, url, t0)
	idx.Count = snapshots
	n.Notify(idx)
	for i := 0; i < snapshots; i++ {
		typ := ports.EventSnapshotFetched
		if i < failed {
			typ = ports.EventSnapshotFailed
		}
		n.Notify(eventAt(typ, url, t0))
	}
	done := eventAt(ports.EventURLCompleted, url, t0.Add(1500*time.Millisecond))
	done.Count = codes
	n.Notify(done)
}

func TestTracker(t *testing.T) {
	tr := newTracker()
	tr.apply(ports.Event{Type: ports.EventBatchStarted, Count: 2})
	testutil.AssertEqual(t, tr.total, 2, "total from batch event")

	t0 := time.Now()
	tr.apply(eventAt(ports.EventURLStarted, "a.com", t0))
	p, ok := tr.get("a.com")
	testutil.AssertTrue(t, ok, "tracked")
	testutil.AssertEqual(t, p.Status, StatusRunning, "running")

	tr.apply(ports.Event{Type: ports.EventURLIndexed, URL: "a.com", Count: 3})
	tr.apply(ports.Event{Type: ports.EventSnapshotFetched, URL: "a.com"})
	tr.apply(ports.Event{Type: ports.EventSnapshotFailed, URL: "a.com"})
	tr.apply(ports.Event{Type: ports.EventURLCompleted, URL: "a.com", Count: 4, Timestamp: t0.Add(time.Second)})

	p, _ = tr.get("a.com")
	testutil.AssertEqual(t, p.Snapshots, 3, "snapshots")
	testutil.AssertEqual(t, p.Fetched, 1, "fetched")
	testutil.AssertEqual(t, p.Failed, 1, "failed")
	testutil.AssertEqual(t, p.Codes, 4, "codes")
	testutil.AssertEqual(t, p.Status, StatusPartial, "failed snapshots downgrade status")
	testutil.AssertEqual(t, p.Duration, time.Second, "duration")

	tr.apply(ports.Event{Type: ports.EventURLFailed, URL: "b.com", Err: errors.New("boom")})
	p, _ = tr.get("b.com")
	testutil.AssertEqual(t, p.Status, StatusFailed, "failed url")
	testutil.AssertEqual(t, tr.done, 2, "done count")
	testutil.AssertLen(t, tr.order, 2, "tracked urls")
	testutil.AssertEqual(t, tr.order[0], "a.com", "first-seen order")

	_, ok = tr.get("missing.com")
	testutil.AssertFalse(t, ok, "unknown url")
}

func TestRawPresenter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf, nil, LogFormatJSON)

	r.Start(RunInfo{URLs: 1, Concurrency: 10, Format: "json"})
	r.Notify(ports.Event{Type: ports.EventBatchStarted, Count: 1})
	replayURL(r, "a.com", 2, 1, 3)

	p, ok := r.Progress("a.com")
	testutil.AssertTrue(t, ok, "tracked")
	testutil.AssertEqual(t, p.Codes, 3, "codes")

	batch := domain.NewBatchResult()
	batch.Results = append(batch.Results, domain.URLResult{URL: "a.com", Archived: domain.NewCodeIntervals()})
	batch.Finalize()
	r.Finish(batch, []string{"out/x.json"})

	var messages []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("line is not JSON: %q", sc.Text())
		}
		messages = append(messages, entry["message"].(string))
	}

	for _, want := range []string{"run_started", "batch_started", "url_started", "url_indexed", "snapshot_failed", "url_completed", "result", "run_completed"} {
		testutil.AssertContains(t, messages, want, "logged event")
	}
}

func TestRawPresenter_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf, nil, "")
	r.Notify(ports.Event{Type: ports.EventURLFailed, URL: "down.com", Err: errors.New("index query failed")})

	out := buf.String()
	testutil.AssertContains(t, out, "url_failed", "message")
	testutil.AssertContains(t, out, "down.com", "url field")
}

func TestRawPresenter_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"yes", "y\n", true},
		{"long yes", "YES\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"eof without newline", "y", true},
		{"no input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRawPresenter(&bytes.Buffer{}, strings.NewReader(tt.input), LogFormatText)
			testutil.AssertEqual(t, r.Confirm("continue?"), tt.expected, "answer")
		})
	}

	t.Run("no reader", func(t *testing.T) {
		r := NewRawPresenter(&bytes.Buffer{}, nil, LogFormatText)
		testutil.AssertFalse(t, r.Confirm("continue?"), "cannot ask")
	})
}

func TestNoopPresenter(t *testing.T) {
	var p Presenter = NewNoopPresenter()
	p.Start(RunInfo{})
	p.Notify(ports.Event{Type: ports.EventBatchStarted})
	p.Finish(domain.NewBatchResult(), nil)

	testutil.AssertFalse(t, p.Confirm("continue?"), "never confirms")
	testutil.AssertNoError(t, p.Close(), "close")
}

func TestPTermPresenter_TracksEvents(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	p := NewPTermPresenter()
	replayURL(p, "a.com", 3, 0, 2)
	p.Notify(ports.Event{Type: ports.EventURLFailed, URL: "b.com", Err: errors.New("index query failed")})

	a, ok := p.Progress("a.com")
	testutil.AssertTrue(t, ok, "a tracked")
	testutil.AssertEqual(t, a.Status, StatusSuccess, "a succeeded")
	testutil.AssertEqual(t, a.Fetched, 3, "a fetched")

	b, _ := p.Progress("b.com")
	testutil.AssertEqual(t, b.Status, StatusFailed, "b failed")
	testutil.AssertNoError(t, p.Close(), "close")
}

func TestSummaryTable(t *testing.T) {
	archived := domain.NewCodeIntervals()
	archived[domain.ClassLegacy]["UA-2"] = domain.NewInterval("20120101000000")
	archived[domain.ClassLegacy]["UA-1"] = domain.NewInterval("20130101000000")

	batch := domain.NewBatchResult()
	batch.Results = []domain.URLResult{
		{URL: "a.com", Archived: archived, Snapshots: 5, Failed: 1},
		{URL: "b.com", Archived: domain.NewCodeIntervals(), Err: errors.New("x")},
	}

	data := summaryTable(batch)
	testutil.AssertEqual(t, len(data), 3, "header + rows")
	testutil.AssertEqual(t, data[1][1], "a.com", "url column")
	testutil.AssertEqual(t, data[1][2], "5 (1 failed)", "snapshots column")
	testutil.AssertEqual(t, data[1][3], "UA-1, UA-2", "sorted codes")
	testutil.AssertEqual(t, data[1][4], "-", "empty class")
	testutil.AssertEqual(t, resultStatus(batch.Results[1]), StatusFailed, "error status")
}

func TestFormatDuration(t *testing.T) {
	testutil.AssertEqual(t, formatDuration(250*time.Millisecond), "250ms", "millis")
	testutil.AssertEqual(t, formatDuration(1500*time.Millisecond), "1.5s", "seconds")
	testutil.AssertEqual(t, formatDuration(125*time.Second), "2m5s", "minutes")
}

func TestStatus(t *testing.T) {
	testutil.AssertEqual(t, StatusPartial.String(), "partial", "name")
	testutil.AssertEqual(t, StatusFailed.Symbol(), "✗", "symbol")
	testutil.AssertEqual(t, StatusSuccess.Color(), pterm.FgGreen, "color")
	testutil.AssertEqual(t, Status(99).String(), "unknown", "out of range")
}
