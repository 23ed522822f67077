package processor

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readText reads a text source as UTF-8. A UTF-8 BOM is stripped and UTF-16
// files with a BOM are decoded.
func readText(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return decoded, nil
}

// datasetFromRecords builds a dataset from a header row followed by data rows.
func datasetFromRecords(records [][]string) (dataframe.DataFrame, error) {
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("source has no header row")
	}
	if len(records[0]) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: found %d", ErrTooFewColumns, len(records[0]))
	}

	if len(records) == 1 {
		return emptyDataset(records[0])
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	return checkDataset(df)
}

// emptyDataset keeps the columns of a source that has a header but no rows.
func emptyDataset(header []string) (dataframe.DataFrame, error) {
	columns := make([]series.Series, 0, len(header))
	for _, name := range header {
		columns = append(columns, series.New([]string{}, series.String, name))
	}
	return checkDataset(dataframe.New(columns...))
}

func checkDataset(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("load dataset: %w", df.Err)
	}
	if df.Ncol() < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: found %d", ErrTooFewColumns, df.Ncol())
	}
	return df, nil
}

// padRecords aligns every data row to the header width. Spreadsheet readers
// drop trailing empty cells.
func padRecords(records [][]string) [][]string {
	if len(records) == 0 {
		return records
	}
	width := len(records[0])
	aligned := make([][]string, 0, len(records))
	aligned = append(aligned, records[0])
	for _, row := range records[1:] {
		values := make([]string, width)
		for i := range values {
			if i < len(row) {
				values[i] = row[i]
			}
		}
		aligned = append(aligned, values)
	}
	return aligned
}
