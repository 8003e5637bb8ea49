package db

import (
	"context"
	"database/sql"
)

// DBTX is what the schedule repositories run their queries against. A
// use case hands them the *sql.Tx from WithinTx so that a recalculation's
// entry updates, alert rewrites and project touch land together; read-only
// callers may pass the *sql.DB directly.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
