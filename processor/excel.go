package processor

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelProcessor reads the first worksheet, or the configured one, of an
// Excel workbook. The first row holds the column names.
type ExcelProcessor struct {
	base
}

func NewExcelProcessor(source string, opts Options) *ExcelProcessor {
	return &ExcelProcessor{base: newBase(source, opts)}
}

func (p *ExcelProcessor) Load() error {
	p.reset()

	file, err := excelize.OpenFile(p.source)
	if err != nil {
		return fmt.Errorf("open excel file %s: %w", p.source, err)
	}
	defer file.Close()

	sheetName := strings.TrimSpace(p.opts.ExcelSheet)
	if sheetName == "" {
		sheetName = file.GetSheetName(0)
	}
	if sheetName == "" {
		return fmt.Errorf("excel file has no sheets: %s", p.source)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("sheet %s is empty", sheetName)
	}

	df, err := datasetFromRecords(padRecords(rows))
	if err != nil {
		return fmt.Errorf("load excel %s: %w", p.source, err)
	}
	p.setDataset(df)
	return nil
}
