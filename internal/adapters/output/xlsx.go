// internal/adapters/output/xlsx.go
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"waybackga/internal/core/domain"
	"waybackga/internal/core/ports"
)

// Nombres de las hojas del libro.
const (
	SheetURLs  = "URLs"
	SheetCodes = "Codes"
)

// XLSXExporter escribe un libro con una hoja por vista.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (XLSXExporter) Name() string { return "xlsx" }

func (XLSXExporter) Export(result *domain.BatchResult, opts ports.ExportOptions) ([]string, error) {
	path, err := prepare(opts, result, ".xlsx")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default workbook has a single "Sheet1".
	if err := f.SetSheetName("Sheet1", SheetURLs); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetCodes); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeSheet(f, SheetURLs, URLColumns, URLRows(result), headerStyle, wrapStyle); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetCodes, CodeColumns, CodeRows(result), headerStyle, wrapStyle); err != nil {
		return nil, err
	}

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}
	return []string{path}, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, headerStyle, wrapStyle int) error {
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if len(rows) > 0 {
		end := fmt.Sprintf("%s%d", lastCol, len(rows)+1)
		if err := f.SetCellStyle(sheet, "A2", end, wrapStyle); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", lastCol, 30)
}
