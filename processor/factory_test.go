package processor

import (
	"fmt"
	"testing"
)

func TestFactory_ProcessorFor(t *testing.T) {
	t.Parallel()

	factory := NewFactory(DefaultOptions())
	tests := []struct {
		source string
		want   string
	}{
		{source: "temperature.csv", want: "*processor.CSVProcessor"},
		{source: "HUMIDITY.CSV", want: "*processor.CSVProcessor"},
		{source: "seeds.txt", want: "*processor.TableProcessor"},
		{source: "report.xlsx", want: "*processor.ExcelProcessor"},
		{source: "report.xlsm", want: "*processor.ExcelProcessor"},
		{source: "readings.parquet", want: "*processor.ParquetProcessor"},
		{source: "weather.sqlite", want: "*processor.SQLiteProcessor"},
		{source: "weather.db", want: "*processor.SQLiteProcessor"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			proc, ok := factory.ProcessorFor(tt.source)
			if !ok || proc == nil {
				t.Fatalf("expected processor for %s", tt.source)
			}
			if got := fmt.Sprintf("%T", proc); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if proc.Source() != tt.source {
				t.Fatalf("expected source %q, got %q", tt.source, proc.Source())
			}
			if proc.Loaded() {
				t.Fatalf("expected a fresh, unloaded processor")
			}
		})
	}
}

func TestFactory_UnknownSuffix(t *testing.T) {
	t.Parallel()

	factory := NewFactory(DefaultOptions())
	for _, source := range []string{"readings.json", "noextension", "archive.csv.gz", ""} {
		proc, ok := factory.ProcessorFor(source)
		if ok || proc != nil {
			t.Fatalf("expected no processor for %q, got %T", source, proc)
		}
	}
}

func TestFactory_NewInstancePerCall(t *testing.T) {
	t.Parallel()

	factory := NewFactory(DefaultOptions())
	first, _ := factory.ProcessorFor("a.csv")
	second, _ := factory.ProcessorFor("a.csv")
	if first == second {
		t.Fatalf("expected independent processor instances")
	}
}

func TestFactory_RegisterNewVariant(t *testing.T) {
	t.Parallel()

	factory := NewFactory(DefaultOptions())
	factory.Register("tsv", func(source string, opts Options) Processor {
		return NewTableProcessor(source, opts)
	})

	proc, ok := factory.ProcessorFor("readings.tsv")
	if !ok {
		t.Fatalf("expected registered extension to resolve")
	}
	if _, isTable := proc.(*TableProcessor); !isTable {
		t.Fatalf("expected table processor, got %T", proc)
	}

	found := false
	for _, extension := range factory.Extensions() {
		if extension == ".tsv" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected .tsv in %v", factory.Extensions())
	}
}
