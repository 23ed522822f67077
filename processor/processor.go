// Package processor loads tabular sources into datasets, sorts them and
// reports summaries. One Processor variant exists per source format; the
// Factory picks the variant from the source file extension.
package processor

import (
	"fmt"
	"io"
	"strings"

	"datalab/internal/timeutil"

	"github.com/go-gota/gota/dataframe"
)

// Processor is one source's load, transform and report cycle. Dataset and
// Result are owned by the instance and discarded with it.
type Processor interface {
	Source() string
	// Load reads the source into the dataset. On error the dataset stays unset.
	Load() error
	Loaded() bool
	Dataset() dataframe.DataFrame
	Result() dataframe.DataFrame
	// Run sorts the dataset ascending by column into the result.
	Run(column string) error
	Report(w io.Writer) error
	StatForPeriod(w io.Writer, period timeutil.Period) (dataframe.DataFrame, error)
}

type Options struct {
	Separator          rune
	FallbackSeparators []rune
	PeriodColumn       string
	SQLiteTable        string
	ExcelSheet         string
}

func DefaultOptions() Options {
	return Options{
		Separator:          ';',
		FallbackSeparators: []rune{','},
		PeriodColumn:       "datetime",
		SQLiteTable:        "dataset",
	}
}

// base carries the state and behaviour shared by all variants. Variants
// embed it and provide Load.
type base struct {
	source   string
	opts     Options
	dataset  dataframe.DataFrame
	result   dataframe.DataFrame
	sortedBy string
	loaded   bool
	ran      bool
}

func newBase(source string, opts Options) base {
	return base{source: source, opts: opts}
}

func (b *base) Source() string {
	return b.source
}

func (b *base) Loaded() bool {
	return b.loaded
}

func (b *base) Dataset() dataframe.DataFrame {
	return b.dataset
}

func (b *base) Result() dataframe.DataFrame {
	return b.result
}

func (b *base) reset() {
	b.dataset = dataframe.DataFrame{}
	b.result = dataframe.DataFrame{}
	b.sortedBy = ""
	b.loaded = false
	b.ran = false
}

func (b *base) setDataset(df dataframe.DataFrame) {
	b.dataset = df
	b.loaded = true
}

func (b *base) setResult(df dataframe.DataFrame, column string) {
	b.result = df
	b.sortedBy = column
	b.ran = true
}

func (b *base) Run(column string) error {
	if !b.loaded {
		return ErrNotLoaded
	}
	name, err := b.resolveColumn(column)
	if err != nil {
		return err
	}

	sorted := sortByColumn(b.dataset, name, true)
	if sorted.Err != nil {
		return fmt.Errorf("sort %s by %q: %w", b.source, name, sorted.Err)
	}
	b.setResult(sorted, name)
	return nil
}

func (b *base) Report(w io.Writer) error {
	if !b.loaded {
		return ErrNotLoaded
	}
	if !b.ran {
		return ErrNotRun
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Source: %s (%d rows, %d columns)\n", b.source, b.dataset.Nrow(), b.dataset.Ncol())
	fmt.Fprintf(&out, "Original dataset:\n%s\n", b.dataset.String())
	fmt.Fprintf(&out, "Sorted by %s:\n%s\n", b.sortedBy, b.result.String())
	out.WriteString(Summarize(b.result).String())

	if _, err := io.WriteString(w, out.String()); err != nil {
		return fmt.Errorf("write report for %s: %w", b.source, err)
	}
	return nil
}

func (b *base) StatForPeriod(w io.Writer, period timeutil.Period) (dataframe.DataFrame, error) {
	if !b.loaded {
		return dataframe.DataFrame{}, ErrNotLoaded
	}
	column, err := b.resolveColumn(b.opts.PeriodColumn)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	filtered, err := FilterPeriod(b.dataset, column, period)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("period query on %s: %w", b.source, err)
	}

	text := fmt.Sprintf("Period %s in %s: %d rows\n%s\n", period, b.source, filtered.Nrow(), filtered.String())
	if _, err := io.WriteString(w, text); err != nil {
		return filtered, fmt.Errorf("write period report for %s: %w", b.source, err)
	}
	return filtered, nil
}

func (b *base) resolveColumn(column string) (string, error) {
	name, ok := lookupColumn(b.dataset.Names(), column)
	if !ok {
		return "", &ColumnNotFoundError{Source: b.source, Column: column}
	}
	return name, nil
}

// sortByColumn is the transform shared by the variants that sort in memory.
func sortByColumn(df dataframe.DataFrame, column string, asc bool) dataframe.DataFrame {
	if asc {
		return df.Arrange(dataframe.Sort(column))
	}
	return df.Arrange(dataframe.RevSort(column))
}

// lookupColumn matches exactly first, then ignoring case, blanks, "_" and "-".
func lookupColumn(names []string, column string) (string, bool) {
	if strings.TrimSpace(column) == "" {
		return "", false
	}
	for _, name := range names {
		if name == column {
			return name, true
		}
	}
	wanted := normalizeColumnName(column)
	for _, name := range names {
		if normalizeColumnName(name) == wanted {
			return name, true
		}
	}
	return "", false
}

func normalizeColumnName(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
