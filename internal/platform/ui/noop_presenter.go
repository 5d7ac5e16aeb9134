// internal/platform/ui/noop_presenter.go
package ui

import (
	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet o headless.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Notify no hace nada
func (n *NoopPresenter) Notify(ports.Event) {}

// Start no hace nada
func (n *NoopPresenter) Start(RunInfo) {}

// Confirm no puede preguntar sin UI
func (n *NoopPresenter) Confirm(string) bool { return false }

// Finish no hace nada
func (n *NoopPresenter) Finish(*domain.BatchResult, []string) {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
