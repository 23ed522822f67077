package processor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
)

// CSVProcessor handles delimited text with a header row. The configured
// separator is tried first, then each fallback separator.
type CSVProcessor struct {
	base
}

func NewCSVProcessor(source string, opts Options) *CSVProcessor {
	return &CSVProcessor{base: newBase(source, opts)}
}

func (p *CSVProcessor) Load() error {
	p.reset()

	data, err := readText(p.source)
	if err != nil {
		return err
	}

	var lastErr error
	for i, separator := range p.separators() {
		df, err := readCSV(data, separator)
		if err != nil {
			slog.Debug("csv separator rejected",
				slog.String("source", p.source),
				slog.String("separator", string(separator)),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		if i > 0 {
			slog.Info("csv loaded with fallback separator",
				slog.String("source", p.source),
				slog.String("separator", string(separator)))
		}
		p.setDataset(df)
		return nil
	}

	return fmt.Errorf("load csv %s: %w", p.source, lastErr)
}

func (p *CSVProcessor) separators() []rune {
	separators := make([]rune, 0, 1+len(p.opts.FallbackSeparators))
	seen := make(map[rune]struct{}, cap(separators))
	for _, separator := range append([]rune{p.opts.Separator}, p.opts.FallbackSeparators...) {
		if separator == 0 {
			continue
		}
		if _, ok := seen[separator]; ok {
			continue
		}
		seen[separator] = struct{}{}
		separators = append(separators, separator)
	}
	if len(separators) == 0 {
		separators = append(separators, ';')
	}
	return separators
}

func readCSV(data []byte, separator rune) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithDelimiter(separator),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		if header, ok := headerOnly(data, separator); ok {
			return datasetFromRecords([][]string{header})
		}
	}
	return checkDataset(df)
}

// headerOnly reports whether data holds a header row and nothing else.
func headerOnly(data []byte, separator rune) ([]string, bool) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = separator
	records, err := reader.ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}
