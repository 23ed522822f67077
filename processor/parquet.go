package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// ParquetProcessor reads a Parquet file through Arrow. Null cells become NA.
type ParquetProcessor struct {
	base
}

func NewParquetProcessor(source string, opts Options) *ParquetProcessor {
	return &ParquetProcessor{base: newBase(source, opts)}
}

func (p *ParquetProcessor) Load() error {
	p.reset()

	f, err := os.Open(p.source)
	if err != nil {
		return fmt.Errorf("open parquet file %s: %w", p.source, err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(parquet.NewReaderProperties(memory.DefaultAllocator)))
	if err != nil {
		return fmt.Errorf("create parquet reader for %s: %w", p.source, err)
	}
	defer pf.Close()

	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return fmt.Errorf("create arrow reader for %s: %w", p.source, err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return fmt.Errorf("read parquet data from %s: %w", p.source, err)
	}
	defer table.Release()

	df, err := datasetFromRecords(arrowTableRecords(table))
	if err != nil {
		return fmt.Errorf("load parquet %s: %w", p.source, err)
	}
	p.setDataset(df)
	return nil
}

func arrowTableRecords(table arrow.Table) [][]string {
	numCols := int(table.NumCols())
	numRows := int(table.NumRows())

	header := make([]string, numCols)
	for i, field := range table.Schema().Fields() {
		header[i] = field.Name
	}

	records := make([][]string, numRows+1)
	records[0] = header
	for row := 1; row <= numRows; row++ {
		records[row] = make([]string, numCols)
	}

	for col := 0; col < numCols; col++ {
		row := 1
		for _, chunk := range table.Column(col).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					records[row][col] = "NA"
				} else {
					records[row][col] = chunk.ValueStr(i)
				}
				row++
			}
		}
	}
	return records
}
