// internal/core/usecases/aggregator.go
package usecases

import (
	"sync"

	"waybackga/internal/core/domain"
)

// Aggregator acumula, por clase e identificador, el intervalo entre la
// primera y la última captura en que se vio. Las capturas llegan en orden
// arbitrario; como el merge es un min/max el resultado no depende del orden.
// Seguro para uso concurrente. Uno por ejecución de URL.
type Aggregator struct {
	mu        sync.Mutex
	intervals domain.CodeIntervals
}

// NewAggregator crea un agregador vacío con las tres clases presentes.
func NewAggregator() *Aggregator {
	return &Aggregator{intervals: domain.NewCodeIntervals()}
}

// Record registra una ocurrencia de id en la captura ts.
func (a *Aggregator) Record(class domain.IdentifierClass, id string, ts domain.Timestamp) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record(class, id, ts)
}

// RecordAll registra todas las ocurrencias de un documento bajo un único lock.
func (a *Aggregator) RecordAll(occ domain.Occurrences, ts domain.Timestamp) {
	if occ.Total() == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for class, ids := range occ {
		for _, id := range ids {
			a.record(class, id, ts)
		}
	}
}

// record must be called with a.mu held.
func (a *Aggregator) record(class domain.IdentifierClass, id string, ts domain.Timestamp) {
	byID, ok := a.intervals[class]
	if !ok {
		byID = make(map[string]domain.Interval)
		a.intervals[class] = byID
	}
	if iv, seen := byID[id]; seen {
		byID[id] = iv.Extend(ts)
		return
	}
	byID[id] = domain.NewInterval(ts)
}

// Result devuelve una copia del estado actual.
func (a *Aggregator) Result() domain.CodeIntervals {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.intervals.Clone()
}
