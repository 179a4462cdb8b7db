package filing

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/a3tai/mcp-fines-reader/internal/certificate"
)

const summarySheet = "Resumen"

var summaryHeaders = []string{
	"Tribunal",
	"Rol Causa",
	"Fecha Ingreso RMNP",
	"Agrupación",
}

// renderSummary returns an XLSX workbook listing every record, grouped by
// court in the order the groups are given.
func renderSummary(subject certificate.Subject, groups []certificate.CourtGroup) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Patente")
	_ = f.SetCellValue(summarySheet, "B1", subject.Plate)
	_ = f.SetCellValue(summarySheet, "A2", "Propietario")
	_ = f.SetCellValue(summarySheet, "B2", subject.FullName)
	_ = f.SetCellValue(summarySheet, "A3", "R.U.N")
	_ = f.SetCellValue(summarySheet, "B3", subject.NationalID)
	_ = f.SetCellStyle(summarySheet, "A1", "A3", bold)

	const headerRow = 5
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(summarySheet, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(summaryHeaders), headerRow)
	_ = f.SetCellStyle(summarySheet, first, last, bold)

	row := headerRow + 1
	for _, g := range groups {
		for _, r := range g.Records {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(summarySheet, cell, v)
			}
			write(1, r.CourtName)
			write(2, r.CaseRoll)
			write(3, r.EntryDate)
			write(4, g.Key)
			row++
		}
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 48) // court
	_ = f.SetColWidth(summarySheet, "B", "C", 20)
	_ = f.SetColWidth(summarySheet, "D", "D", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
