package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nullableString converts an empty string into a SQL NULL.
func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// listExpression builds a VARCHAR list literal.
func listExpression(values []string) string {
	if values == nil {
		return "NULL"
	}
	literals := make([]string, 0, len(values))
	for _, v := range values {
		literals = append(literals, quoteLiteral(v))
	}
	return fmt.Sprintf("[%s]::VARCHAR[]", strings.Join(literals, ", "))
}

// quoteLiteral escapes a string for SQL literal use.
func quoteLiteral(value string) string {
	escaped := strings.ReplaceAll(value, "'", "''")
	return "'" + escaped + "'"
}

// lookupID fetches a single ID column value for a row keyed by keyColumn.
func lookupID(ctx context.Context, db rowQuerier, table, idColumn, keyColumn, key string) (string, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", idColumn, table, keyColumn)
	var id string
	if err := db.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
