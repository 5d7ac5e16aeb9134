// internal/testutil/mocks.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Nota: los fakes de ports están en sus respectivos paquetes de test.
// Este archivo contiene solo utilidades genéricas sin dependencias de domain.

// FakeArchive simula el índice CDX, las capturas del archivo y la página en vivo
// sobre un httptest.Server.
type FakeArchive struct {
	Server *httptest.Server

	mu        sync.Mutex
	snapshots map[string]string // timestamp -> html
	status    map[string]int    // prefijo de ruta -> status forzado
	live      string
	index     []string
	queries   []url.Values
	Delay     time.Duration

	calls    atomic.Int64
	inFlight atomic.Int64
	peak     atomic.Int64
}

// NewFakeArchive arranca el servidor; el llamador debe cerrar con Close.
func NewFakeArchive() *FakeArchive {
	fa := &FakeArchive{
		snapshots: make(map[string]string),
		status:    make(map[string]int),
	}
	fa.Server = httptest.NewServer(http.HandlerFunc(fa.serve))
	return fa
}

// Close detiene el servidor.
func (fa *FakeArchive) Close() { fa.Server.Close() }

// URL es la base del servidor (sirve como host del índice y del archivo).
func (fa *FakeArchive) URL() string { return fa.Server.URL }

// SetIndex fija los timestamps que devuelve el índice.
func (fa *FakeArchive) SetIndex(timestamps ...string) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.index = append([]string(nil), timestamps...)
}

// SetSnapshot fija el html de una captura.
func (fa *FakeArchive) SetSnapshot(ts, html string) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.snapshots[ts] = html
}

// SetLive fija el html de la página en vivo (cualquier ruta fuera de /cdx y /web).
func (fa *FakeArchive) SetLive(html string) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.live = html
}

// FailPath fuerza un status para las rutas que empiecen por prefix.
func (fa *FakeArchive) FailPath(prefix string, status int) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.status[prefix] = status
}

// Queries devuelve los parámetros de cada consulta al índice.
func (fa *FakeArchive) Queries() []url.Values {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return append([]url.Values(nil), fa.queries...)
}

// Calls es el total de peticiones recibidas.
func (fa *FakeArchive) Calls() int { return int(fa.calls.Load()) }

// Peak es el máximo de peticiones simultáneas observado.
func (fa *FakeArchive) Peak() int { return int(fa.peak.Load()) }

func (fa *FakeArchive) serve(w http.ResponseWriter, r *http.Request) {
	fa.calls.Add(1)
	n := fa.inFlight.Add(1)
	defer fa.inFlight.Add(-1)
	for {
		p := fa.peak.Load()
		if n <= p || fa.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if fa.Delay > 0 {
		time.Sleep(fa.Delay)
	}

	fa.mu.Lock()
	defer fa.mu.Unlock()

	for prefix, code := range fa.status {
		if strings.HasPrefix(r.URL.Path, prefix) {
			w.WriteHeader(code)
			return
		}
	}

	switch {
	case strings.HasPrefix(r.URL.Path, "/cdx/search/cdx"):
		fa.queries = append(fa.queries, r.URL.Query())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(FixtureCDXBody(fa.index...)))
	case strings.HasPrefix(r.URL.Path, "/web/"):
		rest := strings.TrimPrefix(r.URL.Path, "/web/")
		ts, _, _ := strings.Cut(rest, "/")
		html, ok := fa.snapshots[ts]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(fa.live))
	}
}
