package processor

import (
	"fmt"
	"strings"

	"datalab/internal/timeutil"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FilterPeriod keeps the rows whose column value lies inside period. Missing
// cells are left out; every present value must parse as a timestamp.
func FilterPeriod(df dataframe.DataFrame, column string, period timeutil.Period) (dataframe.DataFrame, error) {
	col := df.Col(column)
	if col.Err != nil {
		return dataframe.DataFrame{}, &ColumnNotFoundError{Column: column, Source: "dataset"}
	}
	missing := col.IsNaN()
	for i, value := range col.Records() {
		if missing[i] || strings.TrimSpace(value) == "" {
			continue
		}
		if _, err := timeutil.ParseTimestamp(value); err != nil {
			return dataframe.DataFrame{}, &InvalidTimestampError{Column: column, Row: i + 1, Value: value}
		}
	}

	inPeriod := func(el series.Element) bool {
		ts, err := timeutil.ParseTimestamp(el.String())
		return err == nil && period.Contains(ts)
	}

	filtered := df.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.CompFunc,
		Comparando: inPeriod,
	})
	if filtered.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter %q: %w", column, filtered.Err)
	}
	return filtered, nil
}
