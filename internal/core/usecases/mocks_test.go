// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// mockIndex es un mock de ports.IndexClient.
type mockIndex struct {
	mu      sync.Mutex
	stamps  map[string][]domain.Timestamp // url -> timestamps
	errs    map[string]error
	queries []domain.IndexQuery
}

func newMockIndex() *mockIndex {
	return &mockIndex{
		stamps: make(map[string][]domain.Timestamp),
		errs:   make(map[string]error),
	}
}

func (m *mockIndex) set(url string, ts ...domain.Timestamp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamps[url] = ts
}

func (m *mockIndex) fail(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[url] = err
}

func (m *mockIndex) Timestamps(_ context.Context, q domain.IndexQuery) ([]domain.Timestamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)
	if err := m.errs[q.URL]; err != nil {
		return nil, err
	}
	return m.stamps[q.URL], nil
}

func (m *mockIndex) recorded() []domain.IndexQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.IndexQuery(nil), m.queries...)
}

// mockPages es un mock de ports.PageFetcher que mide la concurrencia.
// El html de cada página es una lista de identificadores separados por espacios.
type mockPages struct {
	mu        sync.Mutex
	live      map[string]string
	liveErr   map[string]error
	snapshots map[string]string // url|ts -> html
	snapErr   map[string]error  // url|ts -> error
	delay     time.Duration

	calls    atomic.Int64
	inFlight atomic.Int64
	peak     atomic.Int64
}

func newMockPages() *mockPages {
	return &mockPages{
		live:      make(map[string]string),
		liveErr:   make(map[string]error),
		snapshots: make(map[string]string),
		snapErr:   make(map[string]error),
	}
}

func snapKey(url string, ts domain.Timestamp) string { return url + "|" + string(ts) }

func (m *mockPages) setSnapshot(url string, ts domain.Timestamp, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snapKey(url, ts)] = html
}

func (m *mockPages) failSnapshot(url string, ts domain.Timestamp, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapErr[snapKey(url, ts)] = err
}

func (m *mockPages) setLive(url, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[url] = html
}

func (m *mockPages) failLive(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveErr[url] = err
}

func (m *mockPages) enter(ctx context.Context) error {
	m.calls.Add(1)
	n := m.inFlight.Add(1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *mockPages) leave() { m.inFlight.Add(-1) }

func (m *mockPages) FetchLive(ctx context.Context, url string) (string, error) {
	defer m.leave()
	if err := m.enter(ctx); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.liveErr[url]; err != nil {
		return "", err
	}
	return m.live[url], nil
}

func (m *mockPages) FetchSnapshot(ctx context.Context, url string, ts domain.Timestamp) (string, error) {
	defer m.leave()
	if err := m.enter(ctx); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.snapErr[snapKey(url, ts)]; err != nil {
		return "", err
	}
	return m.snapshots[snapKey(url, ts)], nil
}

// fieldExtractor clasifica cada palabra del html por su prefijo.
type fieldExtractor struct{}

func (fieldExtractor) Extract(html string) domain.Occurrences {
	occ := domain.Occurrences{}
	for _, f := range strings.Fields(html) {
		switch {
		case strings.HasPrefix(f, "UA-"):
			occ[domain.ClassLegacy] = append(occ[domain.ClassLegacy], f)
		case strings.HasPrefix(f, "GTM-"):
			occ[domain.ClassTagManager] = append(occ[domain.ClassTagManager], f)
		case strings.HasPrefix(f, "G-"):
			occ[domain.ClassShort] = append(occ[domain.ClassShort], f)
		}
	}
	return occ
}

// eventRecorder guarda los eventos recibidos.
type eventRecorder struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *eventRecorder) Notify(e ports.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) count(t ports.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
