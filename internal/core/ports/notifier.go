// internal/core/ports/notifier.go
package ports

import (
	"time"
)

// Notifier recibe eventos de progreso del pipeline. Las implementaciones
// deben ser seguras para uso concurrente y no bloquear.
type Notifier interface {
	Notify(event Event)
}

// Event representa un evento del pipeline.
type Event struct {
	// Type tipo de evento
	Type EventType

	// Timestamp momento del evento
	Timestamp time.Time

	// URL objetivo relacionado (vacío para eventos del lote)
	URL string

	// Message texto opcional para mostrar
	Message string

	// Count dato numérico asociado (snapshots, códigos, fallos)
	Count int

	// Err error asociado (opcional)
	Err error
}

// EventType define los tipos de eventos del pipeline.
type EventType string

const (
	// Batch events
	EventBatchStarted   EventType = "batch.started"
	EventBatchCompleted EventType = "batch.completed"
	EventBatchAborted   EventType = "batch.aborted"

	// URL events
	EventURLStarted   EventType = "url.started"
	EventURLIndexed   EventType = "url.indexed"
	EventURLCompleted EventType = "url.completed"
	EventURLFailed    EventType = "url.failed"

	// Snapshot events
	EventSnapshotFetched EventType = "snapshot.fetched"
	EventSnapshotFailed  EventType = "snapshot.failed"
)

// NewEvent crea un nuevo evento con la hora actual.
func NewEvent(eventType EventType, url string) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		URL:       url,
	}
}

// NotifierFunc adapta una función al interfaz Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Notifiers reenvía cada evento a todos sus elementos, en orden.
type Notifiers []Notifier

func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		n.Notify(e)
	}
}

// NopNotifier descarta todos los eventos.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
