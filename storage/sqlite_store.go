package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrTableNotFound = errors.New("table not found")

// Table is a query result rendered as text cells, header first.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Records returns the header followed by all rows.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Columns)
	return append(records, t.Rows...)
}

// OpenSQLite opens an existing database file. A missing file is an error
// rather than a fresh empty database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat sqlite db %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("sqlite path is a directory: %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Tables() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return names, nil
}

// OrderBy sorts rows ascending by Column with NULLs last. Numeric compares
// the values as REAL, so numbers stored in TEXT columns sort by value.
type OrderBy struct {
	Column  string
	Numeric bool
}

func (o OrderBy) clause() string {
	if strings.TrimSpace(o.Column) == "" {
		return ""
	}
	column := QuoteIdentifier(o.Column)
	value := column
	if o.Numeric {
		value = "CAST(" + column + " AS REAL)"
	}
	return " ORDER BY " + column + " IS NULL, " + value + " ASC"
}

// ReadTable selects every row of table, sorted in SQL when order names a
// column.
func (s *SQLiteStore) ReadTable(table string, order OrderBy) (*Table, error) {
	if err := s.ensureTable(table); err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + QuoteIdentifier(table) + order.clause()

	rows, err := s.db.Query(query + ";")
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}

	result := &Table{Columns: columns, Rows: make([][]string, 0, 128)}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", table, err)
		}

		row := make([]string, len(columns))
		for i, value := range values {
			row[i] = formatCell(value)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows of %s: %w", table, err)
	}

	return result, nil
}

func (s *SQLiteStore) ensureTable(table string) error {
	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?;`, table).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrTableNotFound, table)
		}
		return fmt.Errorf("lookup table %s: %w", table, err)
	}
	return nil
}

// QuoteIdentifier quotes a table or column name for use in SQL text.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return "NA"
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
