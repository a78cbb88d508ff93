// Package export writes screen data to spreadsheet files.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
)

var SummaryHeader = []string{
	"Employee Code",
	"Employee Name",
	"Group",
	"WFO",
	"WFH",
	"Leave",
	"Holiday",
	"Absent",
	"Working Days",
	"Attendance %",
}

var summaryColumnWidths = []float64{15, 28, 20, 8, 8, 8, 10, 8, 14, 14}

// SummarySheetName is the sheet title for a period, e.g. "Summary 2024-03".
func SummarySheetName(p summary.Period) string {
	return "Summary " + p.String()
}

// WriteSummary writes rows, in the order given, as an xlsx workbook.
func WriteSummary(w io.Writer, period summary.Period, rows []summary.Monthly) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := SummarySheetName(period)
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create percent style: %w", err)
	}

	header := make([]any, len(SummaryHeader))
	for i, h := range SummaryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(SummaryHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range summaryColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, m := range rows {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{
			m.EmployeeCode,
			m.EmployeeName,
			m.GroupName,
			m.WFOCount,
			m.WFHCount,
			m.LeaveCount,
			m.HolidayCount,
			m.AbsentCount,
			m.TotalWorkingDays,
			m.Rate(),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		rateCell := fmt.Sprintf("%s%d", lastCol, row)
		if err := f.SetCellStyle(sheetName, rateCell, rateCell, percentStyle); err != nil {
			return fmt.Errorf("failed to set percent style: %w", err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

// SummaryXLSX returns the workbook WriteSummary would write.
func SummaryXLSX(period summary.Period, rows []summary.Monthly) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, period, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
