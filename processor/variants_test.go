package processor

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
)

func TestTableProcessor_WhitespaceSeparated(t *testing.T) {
	t.Parallel()

	content := "area   perimeter  LKG\n" +
		"15.26  14.84      5.22\n" +
		"\n" +
		"14.88\t14.57      4.956\n" +
		"14.29  14.09      4.825\n"
	path := writeFile(t, t.TempDir(), "seeds.txt", content)

	proc := NewTableProcessor(path, DefaultOptions())
	if err := proc.Load(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if proc.Dataset().Nrow() != 3 || proc.Dataset().Ncol() != 3 {
		t.Fatalf("unexpected shape: %dx%d", proc.Dataset().Nrow(), proc.Dataset().Ncol())
	}

	if err := proc.Run("LKG"); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	got := proc.Result().Col("LKG").Float()
	want := []float64{4.825, 4.956, 5.22}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestTableProcessor_RaggedRowsFail(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ragged.txt", "a b\n1 2\n3\n")
	proc := NewTableProcessor(path, DefaultOptions())
	if err := proc.Load(); err == nil {
		t.Fatalf("expected ragged table to fail")
	}
	if proc.Loaded() {
		t.Fatalf("expected processor to stay unloaded")
	}
}

func TestTableProcessor_SingleColumnFails(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "single.txt", "value\n1\n2\n")
	if err := NewTableProcessor(path, DefaultOptions()).Load(); !errors.Is(err, ErrTooFewColumns) {
		t.Fatalf("expected ErrTooFewColumns, got %v", err)
	}
}

func TestExcelProcessor_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "weather.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	rows := [][]any{
		{"datetime", "temperature", "note"},
		{"2023-01-02 00:00:00", 4.5, "warm"},
		{"2023-01-01 00:00:00", -2.0},
		{"2023-01-03 00:00:00", 1.5, "dry"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = file.Close()

	proc := NewExcelProcessor(path, DefaultOptions())
	if err := proc.Load(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if proc.Dataset().Nrow() != 3 || proc.Dataset().Ncol() != 3 {
		t.Fatalf("unexpected shape: %dx%d", proc.Dataset().Nrow(), proc.Dataset().Ncol())
	}

	if err := proc.Run("datetime"); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if first := proc.Result().Col("datetime").Records()[0]; first != "2023-01-01 00:00:00" {
		t.Fatalf("expected earliest row first, got %q", first)
	}
}

func TestExcelProcessor_UnknownSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	file := excelize.NewFile()
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = file.Close()

	opts := DefaultOptions()
	opts.ExcelSheet = "Readings"
	if err := NewExcelProcessor(path, opts).Load(); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}

func TestParquetProcessor_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "readings.parquet")
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "datetime", Type: arrow.BinaryTypes.String},
		{Name: "pressure", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()
	builder.Field(0).(*array.StringBuilder).AppendValues([]string{
		"2023-01-01 02:00:00", "2023-01-01 00:00:00", "2023-01-01 01:00:00",
	}, nil)
	builder.Field(1).(*array.Float64Builder).AppendValues([]float64{1013.5, 998.25, 0}, []bool{true, true, false})

	record := builder.NewRecord()
	defer record.Release()
	table := array.NewTableFromRecords(schema, []arrow.Record{record})
	defer table.Release()

	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create parquet file: %v", err)
	}
	if err := pqarrow.WriteTable(table, out, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	_ = out.Close()

	proc := NewParquetProcessor(path, DefaultOptions())
	if err := proc.Load(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if proc.Dataset().Nrow() != 3 || proc.Dataset().Ncol() != 2 {
		t.Fatalf("unexpected shape: %dx%d", proc.Dataset().Nrow(), proc.Dataset().Ncol())
	}

	summary := Summarize(proc.Dataset())
	pressure, ok := summary.Column("pressure")
	if !ok || !pressure.Numeric {
		t.Fatalf("expected numeric pressure summary, got %+v", pressure)
	}
	if pressure.Max != 1013.5 || pressure.Min != 998.25 {
		t.Fatalf("expected null to be ignored, got max=%v min=%v", pressure.Max, pressure.Min)
	}
}

func TestParquetProcessor_NotParquet(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "fake.parquet", "datetime;value\n")
	if err := NewParquetProcessor(path, DefaultOptions()).Load(); err == nil {
		t.Fatalf("expected error for invalid parquet file")
	}
}

func newWeatherDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "weather.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	statements := []string{
		`CREATE TABLE dataset (datetime TEXT NOT NULL, wind_speed REAL NOT NULL, direction TEXT NOT NULL);`,
		`INSERT INTO dataset VALUES ('2023-01-01 00:00:00', 4.5, 'N');`,
		`INSERT INTO dataset VALUES ('2023-01-01 01:00:00', 1.5, 'SW');`,
		`INSERT INTO dataset VALUES ('2023-01-01 02:00:00', 7.25, 'E');`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestSQLiteProcessor_LoadAndSortInDatabase(t *testing.T) {
	t.Parallel()

	proc := NewSQLiteProcessor(newWeatherDB(t), DefaultOptions())
	if err := proc.Load(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if proc.Dataset().Nrow() != 3 || proc.Dataset().Ncol() != 3 {
		t.Fatalf("unexpected shape: %dx%d", proc.Dataset().Nrow(), proc.Dataset().Ncol())
	}

	if err := proc.Run("Wind Speed"); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	got := proc.Result().Col("wind_speed").Float()
	want := []float64{1.5, 4.5, 7.25}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if err := proc.Run("missing"); !errors.Is(err, &ColumnNotFoundError{}) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
}

func TestSQLiteProcessor_MissingTable(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.SQLiteTable = "readings"
	proc := NewSQLiteProcessor(newWeatherDB(t), opts)
	err := proc.Load()
	if err == nil || !strings.Contains(err.Error(), "available: dataset") {
		t.Fatalf("expected missing table error listing tables, got %v", err)
	}
	if proc.Loaded() {
		t.Fatalf("expected processor to stay unloaded")
	}
}

func TestSQLiteProcessor_SortsNumbersStoredAsText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "levels.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE dataset (station TEXT NOT NULL, level TEXT NOT NULL);`,
		`INSERT INTO dataset VALUES ('north', '10'), ('south', '9'), ('east', '100');`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	_ = db.Close()

	proc := NewSQLiteProcessor(path, DefaultOptions())
	if err := proc.Load(); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if err := proc.Run("level"); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}

	got := proc.Result().Col("level").Float()
	want := []float64{9, 10, 100}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	inMemory := sortByColumn(proc.Dataset(), "level", true).Col("level").Float()
	for i := range want {
		if inMemory[i] != got[i] {
			t.Fatalf("row %d: sql order %v differs from in-memory order %v", i, got, inMemory)
		}
	}

	if err := proc.Run("station"); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if first := proc.Result().Col("station").Records()[0]; first != "east" {
		t.Fatalf("expected text column sorted as text, got first %q", first)
	}
}
