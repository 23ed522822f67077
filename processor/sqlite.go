package processor

import (
	"errors"
	"fmt"
	"strings"

	"datalab/storage"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// SQLiteProcessor reads one table of a SQLite database. Sorting is pushed
// down to the database with ORDER BY instead of sorting in memory.
type SQLiteProcessor struct {
	base
}

func NewSQLiteProcessor(source string, opts Options) *SQLiteProcessor {
	return &SQLiteProcessor{base: newBase(source, opts)}
}

func (p *SQLiteProcessor) Load() error {
	p.reset()

	df, err := p.query(storage.OrderBy{})
	if err != nil {
		return fmt.Errorf("load sqlite %s: %w", p.source, err)
	}
	p.setDataset(df)
	return nil
}

func (p *SQLiteProcessor) Run(column string) error {
	if !p.loaded {
		return ErrNotLoaded
	}
	name, err := p.resolveColumn(column)
	if err != nil {
		return err
	}

	// Sort in the type the dataset reports, not the column affinity.
	colType := p.dataset.Col(name).Type()
	sorted, err := p.query(storage.OrderBy{
		Column:  name,
		Numeric: colType == series.Int || colType == series.Float,
	})
	if err != nil {
		return fmt.Errorf("sort %s by %q: %w", p.source, name, err)
	}
	p.setResult(sorted, name)
	return nil
}

func (p *SQLiteProcessor) query(order storage.OrderBy) (dataframe.DataFrame, error) {
	store, err := storage.OpenSQLite(p.source)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer store.Close()

	table, err := store.ReadTable(p.opts.SQLiteTable, order)
	if errors.Is(err, storage.ErrTableNotFound) {
		if tables, listErr := store.Tables(); listErr == nil {
			return dataframe.DataFrame{}, fmt.Errorf("%w (available: %s)", err, strings.Join(tables, ", "))
		}
	}
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return datasetFromRecords(table.Records())
}
