package report

import (
	"fmt"

	"github.com/couchcryptid/disaster-census-report/internal/domain"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// writeWorkbook stores the same table as the CSV on a single sheet, with a
// bold frozen header and grouped population digits.
func writeWorkbook(path string, rows []domain.SummaryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{row.State, row.Population, row.DisasterDeclarations}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("write row %q: %w", row.State, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(summarySheet, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	// Built-in format 3 is "#,##0".
	grouped, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return fmt.Errorf("population style: %w", err)
	}
	if len(rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(2, len(rows)+1)
		if err := f.SetCellStyle(summarySheet, "B2", last, grouped); err != nil {
			return fmt.Errorf("apply population style: %w", err)
		}
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	_ = f.SetColWidth(summarySheet, "B", "C", 20)
	if err := f.SetPanes(summarySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
