// internal/platform/ui/presenter.go
package ui

import (
	"time"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// Presenter muestra el progreso de un lote en la terminal. Recibe los eventos
// del orquestador como cualquier ports.Notifier.
type Presenter interface {
	ports.Notifier

	// Start muestra la configuración del lote antes de ejecutarlo
	Start(info RunInfo)

	// Confirm pide confirmación al usuario; false si no es posible preguntar
	Confirm(question string) bool

	// Finish muestra el resumen final y los archivos escritos
	Finish(batch *domain.BatchResult, files []string)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene la información inicial del lote
type RunInfo struct {
	URLs        int
	StartDate   string
	EndDate     string
	Frequency   string
	Limit       int
	Concurrency int
	Stagger     time.Duration
	SkipCurrent bool
	Format      string
	OutputDir   string
}

// URLProgress representa el progreso de una URL
type URLProgress struct {
	URL       string
	Status    Status
	Snapshots int
	Fetched   int
	Failed    int
	Codes     int
	StartTime time.Time
	Duration  time.Duration
	Err       error
}

// tracker acumula el estado por URL a partir de los eventos. No es seguro
// para uso concurrente; cada presenter lo protege con su propio mutex.
type tracker struct {
	order []string
	urls  map[string]*URLProgress
	total int
	done  int
}

func newTracker() *tracker {
	return &tracker{urls: make(map[string]*URLProgress)}
}

// apply actualiza el estado con e y devuelve la URL afectada (nil para
// eventos del lote).
func (t *tracker) apply(e ports.Event) *URLProgress {
	switch e.Type {
	case ports.EventBatchStarted:
		t.total = e.Count
		return nil
	case ports.EventBatchCompleted, ports.EventBatchAborted:
		return nil
	}

	p, ok := t.urls[e.URL]
	if !ok {
		p = &URLProgress{URL: e.URL, Status: StatusPending}
		t.urls[e.URL] = p
		t.order = append(t.order, e.URL)
	}

	switch e.Type {
	case ports.EventURLStarted:
		p.Status = StatusRunning
		p.StartTime = e.Timestamp
	case ports.EventURLIndexed:
		p.Snapshots = e.Count
	case ports.EventSnapshotFetched:
		p.Fetched++
	case ports.EventSnapshotFailed:
		p.Failed++
	case ports.EventURLCompleted:
		p.Codes = e.Count
		p.Status = StatusSuccess
		if p.Failed > 0 {
			p.Status = StatusPartial
		}
		p.Duration = e.Timestamp.Sub(p.StartTime)
		t.done++
	case ports.EventURLFailed:
		p.Status = StatusFailed
		p.Err = e.Err
		p.Duration = e.Timestamp.Sub(p.StartTime)
		t.done++
	}
	return p
}

// get devuelve una copia del progreso de url.
func (t *tracker) get(url string) (URLProgress, bool) {
	p, ok := t.urls[url]
	if !ok {
		return URLProgress{}, false
	}
	return *p, true
}
