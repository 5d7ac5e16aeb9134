// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// JSONExporter escribe la lista de records en JSON indentado. El formato txt
// usa el mismo contenido con otra extensión.
type JSONExporter struct {
	ext string
}

// NewJSONExporter crea un exporter json (ext "json") o txt (ext "txt").
func NewJSONExporter(ext string) *JSONExporter {
	if ext == "" {
		ext = "json"
	}
	return &JSONExporter{ext: ext}
}

func (e *JSONExporter) Name() string { return e.ext }

// Export escribe {dir}/{base}.{ext}.
func (e *JSONExporter) Export(result *domain.BatchResult, opts ports.ExportOptions) ([]string, error) {
	path, err := prepare(opts, result, "."+e.ext)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(Records(result)); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return []string{path}, nil
}

// prepare crea el directorio de salida y devuelve la ruta para suffix.
func prepare(opts ports.ExportOptions, result *domain.BatchResult, suffix string) (string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	base := opts.BaseName
	if base == "" {
		base = FileName(result.StartTime)
	}
	return filepath.Join(dir, base+suffix), nil
}
