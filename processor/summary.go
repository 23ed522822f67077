package processor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColumnSummary holds the extremes and the average of one column. Mean is
// only meaningful for numeric columns; text columns report lexicographic
// extremes in MaxText and MinText.
type ColumnSummary struct {
	Name    string
	Numeric bool
	Max     float64
	Min     float64
	Mean    float64
	MaxText string
	MinText string
}

type Summary struct {
	Columns []ColumnSummary
}

// Summarize derives per-column maximum, minimum and average. Missing values
// are ignored.
func Summarize(df dataframe.DataFrame) Summary {
	names := df.Names()
	summary := Summary{Columns: make([]ColumnSummary, 0, len(names))}
	for _, name := range names {
		summary.Columns = append(summary.Columns, summarizeColumn(df.Col(name)))
	}
	return summary
}

// Column returns the summary of the named column.
func (s Summary) Column(name string) (ColumnSummary, bool) {
	for _, column := range s.Columns {
		if column.Name == name {
			return column, true
		}
	}
	return ColumnSummary{}, false
}

func (s Summary) String() string {
	width := 0
	for _, column := range s.Columns {
		width = max(width, len(column.Name))
	}

	var out strings.Builder
	out.WriteString("Maximum:\n")
	for _, column := range s.Columns {
		fmt.Fprintf(&out, "  %-*s  %s\n", width, column.Name, column.MaxText)
	}
	out.WriteString("Minimum:\n")
	for _, column := range s.Columns {
		fmt.Fprintf(&out, "  %-*s  %s\n", width, column.Name, column.MinText)
	}
	out.WriteString("Average:\n")
	for _, column := range s.Columns {
		if !column.Numeric {
			continue
		}
		fmt.Fprintf(&out, "  %-*s  %s\n", width, column.Name, formatFloat(column.Mean))
	}
	return out.String()
}

func summarizeColumn(col series.Series) ColumnSummary {
	summary := ColumnSummary{Name: col.Name}
	present := withoutMissing(col)
	if present.Len() == 0 {
		summary.Numeric = col.Type() == series.Int || col.Type() == series.Float
		summary.Max, summary.Min, summary.Mean = math.NaN(), math.NaN(), math.NaN()
		summary.MaxText, summary.MinText = formatFloat(summary.Max), formatFloat(summary.Min)
		return summary
	}

	switch col.Type() {
	case series.Int, series.Float:
		summary.Numeric = true
		summary.Max = present.Max()
		summary.Min = present.Min()
		summary.Mean = present.Mean()
		summary.MaxText = formatFloat(summary.Max)
		summary.MinText = formatFloat(summary.Min)
	default:
		summary.Max, summary.Min, summary.Mean = math.NaN(), math.NaN(), math.NaN()
		for i, value := range present.Records() {
			if i == 0 || value > summary.MaxText {
				summary.MaxText = value
			}
			if i == 0 || value < summary.MinText {
				summary.MinText = value
			}
		}
	}
	return summary
}

func withoutMissing(col series.Series) series.Series {
	if !col.HasNaN() {
		return col
	}
	keep := make([]int, 0, col.Len())
	for i, missing := range col.IsNaN() {
		if !missing {
			keep = append(keep, i)
		}
	}
	return col.Subset(keep)
}

func formatFloat(value float64) string {
	if math.IsNaN(value) {
		return "NaN"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
