package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/observability"
	"fittrack/internal/sqlerr"
)

// Querier is the subset of *sql.Tx the stores issue statements through.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the unit of work run inside a session transaction.
type TxFunc func(ctx context.Context, q Querier) error

// Session scopes every store call to one local transaction.
//
// The transaction commits when the TxFunc returns nil and rolls back when it returns an error
// or panics, so a failed call never leaves a partially visible write. Errors leaving the
// session are translated by sqlerr.Handle. Session holds no state besides the pool and is
// safe for concurrent use.
type Session struct {
	db *sql.DB
}

// NewSession creates a Session over db.
func NewSession(db *sql.DB) *Session {
	return &Session{db: db}
}

// WithinTx runs fn in a read-write transaction.
func (s *Session) WithinTx(ctx context.Context, fn TxFunc) error {
	return s.run(ctx, nil, fn)
}

// ReadOnly runs fn in a read-only transaction.
func (s *Session) ReadOnly(ctx context.Context, fn TxFunc) error {
	return s.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (s *Session) run(ctx context.Context, opts *sql.TxOptions, fn TxFunc) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		observability.RecordTransaction("begin_failed")
		return fmt.Errorf("begin transaction: %w", sqlerr.Handle(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			observability.RecordTransaction("rollback")
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		observability.RecordTransaction("rollback")
		return sqlerr.Handle(err)
	}

	if err := tx.Commit(); err != nil {
		observability.RecordTransaction("commit_failed")
		return fmt.Errorf("commit transaction: %w", sqlerr.Handle(err))
	}
	observability.RecordTransaction("commit")
	return nil
}
