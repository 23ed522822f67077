package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// CSVWriter writes a dataset with a header row. Missing values are written
// as empty cells.
type CSVWriter struct {
	Separator rune
}

func (w *CSVWriter) Write(path string, df dataframe.DataFrame) error {
	if df.Err != nil {
		return fmt.Errorf("write csv output %s: %w", path, df.Err)
	}
	return writeCSVRecords(path, w.separator(), datasetRecords(df))
}

func (w *CSVWriter) separator() rune {
	if w.Separator == 0 {
		return ','
	}
	return w.Separator
}

func writeCSVRecords(path string, separator rune, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = separator
	defer writer.Flush()

	for _, row := range records {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

// datasetRecords renders a dataset as header plus rows with NaN cells blanked.
func datasetRecords(df dataframe.DataFrame) [][]string {
	records := df.Records()
	if len(records) == 0 {
		return records
	}
	names := df.Names()
	for col, name := range names {
		missing := df.Col(name).IsNaN()
		for row, isMissing := range missing {
			if isMissing {
				records[row+1][col] = ""
			}
		}
	}
	return records
}
