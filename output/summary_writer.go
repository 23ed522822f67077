package output

import (
	"fmt"

	"datalab/processor"

	"github.com/xuri/excelize/v2"
)

var summaryHeaders = []string{"Column", "Maximum", "Minimum", "Average"}

// WriteSummary writes one row per column with its maximum, minimum and, for
// numeric columns, its average.
func WriteSummary(path, format string, summary processor.Summary) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeCSVRecords(path, ';', summaryRecords(summary))
	case "excel", "xlsx":
		return writeSummaryExcel(path, summary)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func summaryRecords(summary processor.Summary) [][]string {
	records := make([][]string, 0, len(summary.Columns)+1)
	records = append(records, summaryHeaders)
	for _, column := range summary.Columns {
		average := ""
		if column.Numeric {
			average = fmt.Sprintf("%g", column.Mean)
		}
		records = append(records, []string{column.Name, column.MaxText, column.MinText, average})
	}
	return records
}

func writeSummaryExcel(path string, summary processor.Summary) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for col, header := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, column := range summary.Columns {
		row := i + 2
		values := []any{column.Name, column.MaxText, column.MinText, nil}
		if column.Numeric {
			values = []any{column.Name, column.Max, column.Min, column.Mean}
		}

		for col, value := range values {
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
