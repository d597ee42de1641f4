package economy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const DefaultTxTimeout = 30 * time.Second

// TransactionOptions configures transaction behavior
type TransactionOptions struct {
	IsolationLevel sql.IsolationLevel
	Timeout        time.Duration
}

// StandardTransactionOptions returns default transaction options
func StandardTransactionOptions() *TransactionOptions {
	return &TransactionOptions{
		IsolationLevel: sql.LevelReadCommitted,
		Timeout:        DefaultTxTimeout,
	}
}

type txKey struct{}

// TxManager provides a scoped unit of work for economic operations. The
// active transaction travels in the context, so ledger and inventory
// operations called inside the scope share it and commit or roll back
// together.
type TxManager struct {
	db *bun.DB
}

func NewTxManager(db *bun.DB) *TxManager {
	return &TxManager{db: db}
}

// WithTransaction executes a function within a database transaction
func (tm *TxManager) WithTransaction(ctx context.Context, opts *TransactionOptions, fn func(context.Context) error) error {
	if opts == nil {
		opts = StandardTransactionOptions()
	}

	// The timeout is detached from caller cancellation so a disconnecting
	// client cannot leave the unit of work half applied: the transaction
	// either runs to completion or rolls back as a whole.
	timeoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opts.Timeout)
	defer cancel()

	tx, err := tm.db.BeginTx(timeoutCtx, &sql.TxOptions{
		Isolation: opts.IsolationLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(timeoutCtx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RunInTx is WithTransaction with standard options.
func (tm *TxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return tm.WithTransaction(ctx, nil, fn)
}

// dbFromContext resolves the query runner for the current scope: the
// context's transaction when inside one, the fallback connection otherwise.
func dbFromContext(ctx context.Context, fallback bun.IDB) bun.IDB {
	if tx, ok := ctx.Value(txKey{}).(bun.Tx); ok {
		return tx
	}
	return fallback
}
