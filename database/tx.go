package database

import (
	"context"
	"database/sql"
)

// TxQuerier is satisfied by both *sql.DB and *sql.Tx, letting repositories
// run against either a plain connection or an open transaction.
type TxQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
