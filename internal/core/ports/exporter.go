// internal/core/ports/exporter.go
package ports

import (
	"waybackga/internal/core/domain"
)

// Exporter es el port para exportar resultados en diferentes formatos.
type Exporter interface {
	// Name retorna el nombre del exporter (ej: "json", "csv", "xlsx")
	Name() string

	// Export escribe el resultado y retorna las rutas de los ficheros creados
	Export(result *domain.BatchResult, opts ExportOptions) ([]string, error)
}

// ExportOptions configura las opciones de exportación.
type ExportOptions struct {
	// Dir directorio de salida (se crea si no existe)
	Dir string

	// BaseName nombre base sin extensión; vacío = derivado de la hora de inicio
	BaseName string
}
