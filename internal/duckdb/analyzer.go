// Package duckdb wraps an embedded DuckDB connection over a single Parquet
// match dataset. The file is registered as the view `matches` and every
// operation the tools need (schema, query, validation, date ranges, dataset
// builds) goes through the Analyzer.
package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

// TableName is the canonical view name queries must use.
const TableName = "matches"

// Column describes one dataset column.
type Column struct {
	Name string `json:"column_name"`
	Type string `json:"data_type"`
}

// Result holds the outcome of an executed query.
type Result struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

// JSON renders the rows as a compact JSON array. Errors are impossible for
// the value shapes produced by scanRows, so they are swallowed into "[]".
func (r *Result) JSON() string {
	b, err := json.Marshal(r.Rows)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Analyzer is a per-call handle on the dataset. Callers own Close.
type Analyzer struct {
	db       *sql.DB
	dataFile string
}

// Open connects an in-memory DuckDB instance and registers the Parquet file
// as the `matches` view. The file must exist.
func Open(dataFile string) (*Analyzer, error) {
	if _, err := os.Stat(dataFile); err != nil {
		return nil, fmt.Errorf("data file %s: %w", dataFile, err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE OR REPLACE VIEW %s AS SELECT * FROM read_parquet('%s')",
		TableName, escapeString(dataFile),
	)
	if _, err := db.Exec(stmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("register %s: %w", dataFile, err)
	}

	return &Analyzer{db: db, dataFile: dataFile}, nil
}

// DataFile returns the Parquet path the analyzer was opened on.
func (a *Analyzer) DataFile() string { return a.dataFile }

// Close releases the underlying connection.
func (a *Analyzer) Close() error { return a.db.Close() }

// Schema returns the dataset columns in ordinal order.
func (a *Analyzer) Schema(ctx context.Context) ([]Column, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT column_name, data_type FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position",
		TableName,
	)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// CompactSchema renders the schema as a single prompt-friendly line:
// "Columns: date (DATE), home_team (VARCHAR), ...".
func (a *Analyzer) CompactSchema(ctx context.Context) (string, error) {
	cols, err := a.Schema(ctx)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, c.Type))
	}
	return "Columns: " + strings.Join(parts, ", "), nil
}

// Query executes SQL (after autocorrection) and returns generic rows.
func (a *Analyzer) Query(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("no SQL query provided")
	}
	query = a.autocorrect(ctx, query)

	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// Validate prepares the query without executing it. A nil return means the
// SQL parses and binds against the known schema.
func (a *Analyzer) Validate(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("no SQL query provided")
	}
	stmt, err := a.db.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	return stmt.Close()
}

// DateRange returns the earliest and latest match dates as YYYY-MM-DD.
func (a *Analyzer) DateRange(ctx context.Context) (earliest, latest string, err error) {
	row := a.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT CAST(MIN(date) AS DATE), CAST(MAX(date) AS DATE) FROM %s", TableName))
	var minT, maxT sql.NullTime
	if err := row.Scan(&minT, &maxT); err != nil {
		return "", "", fmt.Errorf("date range: %w", err)
	}
	if !minT.Valid || !maxT.Valid {
		return "", "", fmt.Errorf("dataset has no dates")
	}
	return minT.Time.Format("2006-01-02"), maxT.Time.Format("2006-01-02"), nil
}

// TeamNames returns the distinct team names appearing on either side.
func (a *Analyzer) TeamNames(ctx context.Context) ([]string, error) {
	q := fmt.Sprintf(
		"SELECT DISTINCT home_team AS team FROM %[1]s WHERE home_team IS NOT NULL UNION SELECT DISTINCT away_team FROM %[1]s WHERE away_team IS NOT NULL ORDER BY 1",
		TableName,
	)
	rows, err := a.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("team names: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// SummaryStats computes basic statistics for a column, refusing unknown
// column names up front so the generated SQL cannot be abused.
func (a *Analyzer) SummaryStats(ctx context.Context, column string) (map[string]any, error) {
	cols, err := a.Schema(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, c := range cols {
		if c.Name == column {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("column %q not found in dataset", column)
	}

	q := fmt.Sprintf(`SELECT
		COUNT(%[1]q) AS count,
		COUNT(DISTINCT %[1]q) AS unique_count,
		MIN(%[1]q) AS min_value,
		MAX(%[1]q) AS max_value
	FROM %[2]s WHERE %[1]q IS NOT NULL`, column, TableName)

	res, err := a.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if res.RowCount == 0 {
		return nil, fmt.Errorf("no rows for column %q", column)
	}
	return res.Rows[0], nil
}

// autocorrect rewrites the model's most common slip-ups: the wrong table
// name (`data` / `input_data`) and the phantom `match_date` column.
func (a *Analyzer) autocorrect(ctx context.Context, query string) string {
	corrected := tableNameRe.ReplaceAllString(query, "${1} "+TableName)

	if strings.Contains(corrected, "match_date") {
		if cols, err := a.Schema(ctx); err == nil {
			for _, c := range cols {
				if c.Name == "date" {
					corrected = strings.ReplaceAll(corrected, "match_date", "date")
					break
				}
			}
		}
	}
	return corrected
}

// The quoted forms are spelled out: a trailing \b after an optional closing
// quote would let the match stop inside the quotes and strand one of them.
var tableNameRe = regexp.MustCompile(`(?i)\b(FROM|JOIN)\s+(?:"(?:input_data|data)"|'(?:input_data|data)'|(?:input_data|data)\b)`)

func scanRows(rows *sql.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	res.RowCount = len(res.Rows)
	return res, nil
}

// normalizeValue keeps tool results JSON-friendly: byte slices become
// strings and timestamps collapse to dates when they carry no clock time.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		return v
	}
}

func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
