package processor

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// TableProcessor handles plain text tables whose fields are separated by
// runs of whitespace.
type TableProcessor struct {
	base
}

func NewTableProcessor(source string, opts Options) *TableProcessor {
	return &TableProcessor{base: newBase(source, opts)}
}

func (p *TableProcessor) Load() error {
	p.reset()

	data, err := readText(p.source)
	if err != nil {
		return err
	}

	records, err := splitWhitespaceTable(data)
	if err != nil {
		return fmt.Errorf("load table %s: %w", p.source, err)
	}

	df, err := datasetFromRecords(records)
	if err != nil {
		return fmt.Errorf("load table %s: %w", p.source, err)
	}
	p.setDataset(df)
	return nil
}

func splitWhitespaceTable(data []byte) ([][]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	records := make([][]string, 0, 128)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(records) > 0 && len(fields) != len(records[0]) {
			return nil, fmt.Errorf("line %d has %d fields, header has %d", lineNumber, len(fields), len(records[0]))
		}
		records = append(records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return records, nil
}
