// Package dbx holds the small database/sql abstraction shared by the
// repository implementations.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
