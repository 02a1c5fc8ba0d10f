// Package executor runs generated SQL against the analytics database.
package executor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/pharmetrics/askdb/internal/domain"
)

// Error markers let the pipeline distinguish execution failure from a
// legitimately empty result by prefix match.
const (
	DatabaseErrorPrefix   = "Database Error: "
	UnexpectedErrorPrefix = "Unexpected Error: "
)

// MySQLExecutor executes statements against the analytics MySQL database.
// Each call acquires its own connection from the pool and releases it on
// every exit path.
type MySQLExecutor struct {
	db *sql.DB
}

func NewMySQLExecutor(db *sql.DB) *MySQLExecutor {
	return &MySQLExecutor{db: db}
}

// Open connects to the analytics database using a MySQL DSN.
func Open(dsn string) (*MySQLExecutor, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}
	return NewMySQLExecutor(db), nil
}

// Ping verifies analytics database connectivity.
func (e *MySQLExecutor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (e *MySQLExecutor) Close() error {
	return e.db.Close()
}

// Execute runs one SQL statement. SELECT statements return columns plus all
// matched rows; other statements return a rows-affected confirmation.
// Failures never surface as an error value: they are reported as
// marker-prefixed text in the result.
func (e *MySQLExecutor) Execute(ctx context.Context, query string) *domain.ExecutionResult {
	trimmed := strings.TrimSpace(query)
	log.Printf("executor: executing query: %s", truncateForLog(trimmed, 100))

	if strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return e.executeSelect(ctx, trimmed)
	}
	return e.executeStatement(ctx, trimmed)
}

func (e *MySQLExecutor) executeSelect(ctx context.Context, query string) *domain.ExecutionResult {
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return failure(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return failure(err)
	}

	var results [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scanArgs := make([]interface{}, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return failure(err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return failure(err)
	}

	log.Printf("executor: query returned %d rows", len(results))
	return &domain.ExecutionResult{
		Columns:  columns,
		Rows:     results,
		RowCount: len(results),
	}
}

func (e *MySQLExecutor) executeStatement(ctx context.Context, query string) *domain.ExecutionResult {
	res, err := e.db.ExecContext(ctx, query)
	if err != nil {
		return failure(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return failure(err)
	}

	log.Printf("executor: statement affected %d rows", affected)
	return &domain.ExecutionResult{
		Message: fmt.Sprintf("Query executed successfully. %d rows affected.", affected),
	}
}

// failure converts an error into marker-prefixed result text. Driver-level
// errors get the database marker; everything else is unexpected.
func failure(err error) *domain.ExecutionResult {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		log.Printf("executor: database error: %v", err)
		return &domain.ExecutionResult{ErrorText: DatabaseErrorPrefix + err.Error()}
	}
	log.Printf("executor: unexpected error: %v", err)
	return &domain.ExecutionResult{ErrorText: UnexpectedErrorPrefix + err.Error()}
}

func truncateForLog(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RenderTable formats a full result set as a padded plain-text table for
// terminal display.
func RenderTable(columns []string, rows [][]string) string {
	if len(rows) == 0 {
		return "No data found."
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, value := range row {
			if i < len(widths) && len(value) > widths[i] {
				widths[i] = len(value)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-len(s))
	}

	headerCells := make([]string, len(columns))
	for i, col := range columns {
		headerCells[i] = pad(col, widths[i])
	}
	header := strings.Join(headerCells, " | ")

	lines := []string{header, strings.Repeat("-", len(header))}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = pad(value, widths[i])
		}
		lines = append(lines, strings.Join(cells, " | "))
	}

	return strings.Join(lines, "\n")
}
