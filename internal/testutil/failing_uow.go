package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/chantier/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext of a transaction so
// tests can check that a multi-write schedule operation leaves nothing behind.
// Calls are counted from 1; reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// InterleavedWriteUoW runs Write inside the transaction right before the
// first ExecContext whose query starts with Before. It stands in for a
// second session that commits between this session's read and its write.
type InterleavedWriteUoW struct {
	DB     *sql.DB
	Before string
	Write  string
}

func (u *InterleavedWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &interleavedWrite{DBTX: tx, before: u.Before, write: u.Write}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type interleavedWrite struct {
	db.DBTX
	before string
	write  string
	done   atomic.Bool
}

func (w *interleavedWrite) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.HasPrefix(strings.TrimSpace(query), w.before) && w.done.CompareAndSwap(false, true) {
		if _, err := w.DBTX.ExecContext(ctx, w.write); err != nil {
			return nil, fmt.Errorf("interleaved write: %w", err)
		}
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}
