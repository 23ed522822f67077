package output

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes a dataset to the first sheet of a new workbook. Numeric
// columns are stored as numbers, missing values as empty cells.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("write excel output %s: %w", path, df.Err)
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for col, header := range df.Names() {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for col, name := range df.Names() {
		column := df.Col(name)
		for row := 0; row < column.Len(); row++ {
			value := cellValue(column, row)
			if value == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
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

func cellValue(column series.Series, row int) any {
	elem := column.Elem(row)
	if elem.IsNA() {
		return nil
	}
	switch column.Type() {
	case series.Float:
		value := elem.Float()
		if math.IsNaN(value) {
			return nil
		}
		return value
	case series.Int:
		value, err := elem.Int()
		if err != nil {
			return elem.String()
		}
		return value
	case series.Bool:
		value, err := elem.Bool()
		if err != nil {
			return elem.String()
		}
		return value
	default:
		return elem.String()
	}
}
