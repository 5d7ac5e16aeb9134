// internal/adapters/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// CSVExporter escribe dos ficheros: {base}_urls.csv y {base}_codes.csv.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (CSVExporter) Name() string { return "csv" }

func (CSVExporter) Export(result *domain.BatchResult, opts ports.ExportOptions) ([]string, error) {
	urlsPath, err := prepare(opts, result, "_urls.csv")
	if err != nil {
		return nil, err
	}
	codesPath, err := prepare(opts, result, "_codes.csv")
	if err != nil {
		return nil, err
	}

	if err := writeCSV(urlsPath, URLColumns, URLRows(result)); err != nil {
		return nil, err
	}
	if err := writeCSV(codesPath, CodeColumns, CodeRows(result)); err != nil {
		return nil, err
	}
	return []string{urlsPath, codesPath}, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}
