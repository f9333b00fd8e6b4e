package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// BaseRepository provides transaction handling shared by all repositories.
type BaseRepository struct {
	Pool        Pool
	LockTimeout time.Duration // applied with SET LOCAL to every transaction, zero disables
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// NewTxManager returns the transaction manager used by the services.
func NewTxManager(pool Pool, lockTimeout time.Duration) *BaseRepository {
	return &BaseRepository{Pool: pool, LockTimeout: lockTimeout}
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	if r.LockTimeout > 0 {
		// SET does not accept bind parameters.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			_ = tx.Rollback(ctx)
			return nil, apperrors.NewAppError(500, "failed to set lock timeout", err)
		}
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return mapPgError(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithTx runs fn inside a transaction. The transaction is rolled back when fn
// returns an error or panics and committed otherwise.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			// Rollback must not use the request context, which may already be cancelled.
			_ = r.Rollback(context.WithoutCancel(ctx), tx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = r.Rollback(context.WithoutCancel(ctx), tx)
		return err
	}

	return r.Commit(ctx, tx)
}
