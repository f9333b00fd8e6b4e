package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// WithTx begins a transaction, calls fn and commits if fn returns nil.
	// Any error from fn, or a panic, rolls the transaction back.
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
