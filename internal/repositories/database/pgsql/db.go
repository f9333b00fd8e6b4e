package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the subset of *pgxpool.Pool the repositories use.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// PostgreSQL error codes the repositories react to.
const (
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
	pgStringTooLong    = "22001"
	pgLockNotAvailable = "55P03"
	pgDeadlockDetected = "40P01"
)

// constraintBalanceNonNegative backs the in-memory balance check at the storage level.
const constraintBalanceNonNegative = "currency_reserves_balance_non_negative"

// mapPgError translates driver errors into application sentinels and adds context.
func mapPgError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s: %s", apperrors.ErrDuplicate, msg, pgErr.ConstraintName)
		case pgCheckViolation:
			if pgErr.ConstraintName == constraintBalanceNonNegative {
				return fmt.Errorf("%w: %s", apperrors.ErrInsufficientBalance, msg)
			}
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, msg, pgErr.ConstraintName)
		case pgStringTooLong:
			return fmt.Errorf("%w: %s: value too long", apperrors.ErrValidation, msg)
		case pgLockNotAvailable, pgDeadlockDetected:
			return fmt.Errorf("%w: %s", apperrors.ErrBusy, msg)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrBusy, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
