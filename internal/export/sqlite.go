package export

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/demengc/bwell-logkit/internal"
)

// DefaultTable is the table name used when none is given
const DefaultTable = "records"

// Column affinities used by the SQLite exporter
const (
	affinityText    = "TEXT"
	affinityInteger = "INTEGER"
	affinityReal    = "REAL"
)

// SQLiteExporter writes a source as a row table in a SQLite database.
// An existing table with the same name is replaced.
type SQLiteExporter struct {
	Options Options
}

// NewSQLiteExporter creates a SQLite exporter
func NewSQLiteExporter(opts ...Option) *SQLiteExporter {
	return &SQLiteExporter{Options: buildOptions(opts)}
}

// Export writes every record of src as a row of table in the database at
// dbPath, in a single transaction
func (e *SQLiteExporter) Export(ctx context.Context, dbPath, table string, src Source) error {
	if table == "" {
		table = DefaultTable
	}
	t := BuildTable(src, e.Options)
	if len(t.Columns) == 0 {
		return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: fmt.Errorf("no columns to export")}
	}
	affinities := columnAffinities(t)

	db, err := internal.OpenDatabase(ctx, dbPath)
	if err != nil {
		return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: err}
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	quoted := internal.QuoteIdentifier(table)
	defs := make([]string, len(t.Columns))
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = internal.QuoteIdentifier(c)
		defs[i] = cols[i] + " " + affinities[i]
		marks[i] = "?"
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
		return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: fmt.Errorf("drop table: %w", err)}
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoted, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: fmt.Errorf("create table: %w", err)}
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoted, strings.Join(cols, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: fmt.Errorf("prepare insert: %w", err)}
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for n, row := range t.Rows {
		for i, v := range row {
			args[i] = sqliteValue(v, affinities[i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: fmt.Errorf("insert row %d: %w", n, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &internal.ExtractionError{Extractor: "sqlite", Path: dbPath, Err: err}
	}
	internal.LogDebug("Wrote %d rows to %s in %s", len(t.Rows), table, dbPath)
	return nil
}

// Extension returns the file extension for this format
func (e *SQLiteExporter) Extension() string {
	return "db"
}

// columnAffinities picks INTEGER when every non-nil value is a whole number
// or bool, REAL when every value is numeric, and TEXT otherwise
func columnAffinities(t *Table) []string {
	out := make([]string, len(t.Columns))
	for i := range t.Columns {
		kind := ""
		for _, row := range t.Rows {
			kind = widen(kind, cellKind(row[i]))
		}
		if kind == "" {
			kind = affinityText
		}
		out[i] = kind
	}
	return out
}

func cellKind(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case bool, int, int64:
		return affinityInteger
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1<<53 {
			return affinityInteger
		}
		return affinityReal
	case float32:
		return affinityReal
	default:
		return affinityText
	}
}

func widen(current, next string) string {
	switch {
	case next == "":
		return current
	case current == "" || current == next:
		return next
	case current == affinityText || next == affinityText:
		return affinityText
	default:
		return affinityReal
	}
}

func sqliteValue(v any, affinity string) any {
	switch n := v.(type) {
	case nil:
		return nil
	case bool:
		if affinity == affinityText {
			return FormatCell(n)
		}
		if n {
			return int64(1)
		}
		return int64(0)
	case float64:
		switch affinity {
		case affinityInteger:
			return int64(n)
		case affinityText:
			return FormatCell(n)
		}
		return n
	case int:
		if affinity == affinityText {
			return FormatCell(n)
		}
		return int64(n)
	case int64:
		if affinity == affinityText {
			return FormatCell(n)
		}
		return n
	case string:
		return n
	default:
		return FormatCell(n)
	}
}
