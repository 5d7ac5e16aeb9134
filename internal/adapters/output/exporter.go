// internal/adapters/output/exporter.go
package output

import (
	"fmt"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// NewExporter devuelve el exporter para format.
func NewExporter(format domain.OutputFormat) (ports.Exporter, error) {
	switch format {
	case domain.FormatJSON:
		return NewJSONExporter("json"), nil
	case domain.FormatTXT:
		return NewJSONExporter("txt"), nil
	case domain.FormatCSV:
		return NewCSVExporter(), nil
	case domain.FormatXLSX:
		return NewXLSXExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}
