// internal/core/domain/scan_result.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// URLResult es el resultado de una ejecución del pipeline para una URL.
type URLResult struct {
	// URL dirección analizada
	URL string

	// Current identificadores de la página en vivo; nil si se omitió o falló
	Current Occurrences

	// CurrentErr fallo al descargar la página en vivo (no aborta la URL)
	CurrentErr error

	// Archived intervalos por identificador hallados en el archivo
	Archived CodeIntervals

	// Snapshots número de timestamps devueltos por el índice
	Snapshots int

	// Failed snapshots que no se pudieron descargar (contados como vacíos)
	Failed int

	// Err fallo que abortó esta URL (índice caído, rate limit...)
	Err error

	// Duration duración de la ejecución
	Duration time.Duration
}

// OK indica si la ejecución terminó sin error.
func (r URLResult) OK() bool {
	return r.Err == nil
}

// Warning representa una advertencia no crítica durante el lote.
type Warning struct {
	// URL dirección que generó la advertencia (vacío = lote completo)
	URL string

	// Message descripción de la advertencia
	Message string

	// Timestamp momento de la advertencia
	Timestamp time.Time
}

// BatchResult agrupa los resultados de todas las URLs de una invocación.
type BatchResult struct {
	// ID identificador único del lote
	ID string

	// StartTime momento de inicio
	StartTime time.Time

	// EndTime momento de finalización
	EndTime time.Time

	// Duration duración total
	Duration time.Duration

	// Results un resultado por URL, en el orden de entrada
	Results []URLResult

	// Warnings advertencias no críticas
	Warnings []Warning

	// Aborted indica que el lote se cortó por rate limit; Results es parcial
	Aborted bool
}

// NewBatchResult crea un lote vacío con un ID nuevo.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		Results:   []URLResult{},
		Warnings:  []Warning{},
	}
}

// AddWarning añade una advertencia al lote.
func (b *BatchResult) AddWarning(url, message string) {
	b.Warnings = append(b.Warnings, Warning{
		URL:       url,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Finalize marca el lote como completado.
func (b *BatchResult) Finalize() {
	b.EndTime = time.Now()
	b.Duration = b.EndTime.Sub(b.StartTime)
}

// Completed retorna los resultados sin error.
func (b *BatchResult) Completed() []URLResult {
	out := make([]URLResult, 0, len(b.Results))
	for _, r := range b.Results {
		if r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// TotalCodes cuenta identificadores archivados distintos por URL, sumados.
func (b *BatchResult) TotalCodes() int {
	n := 0
	for _, r := range b.Results {
		n += r.Archived.Total()
	}
	return n
}

// Summary retorna un resumen legible del lote.
func (b *BatchResult) Summary() string {
	return fmt.Sprintf(
		"BatchResult{urls=%d, completed=%d, codes=%d, warnings=%d, aborted=%t, duration=%s}",
		len(b.Results),
		len(b.Completed()),
		b.TotalCodes(),
		len(b.Warnings),
		b.Aborted,
		b.Duration,
	)
}
