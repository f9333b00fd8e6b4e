package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// MovementReader defines read operations for the movement ledger
type MovementReader interface {
	// ListMovementsByReserve returns movements of a reserve, newest first, optionally bounded by date.
	ListMovementsByReserve(ctx context.Context, reserveID string, from, to *time.Time) ([]domain.CurrencyMovement, error)

	// ListMovementsByTransaction returns the legs recorded for an exchange transaction.
	ListMovementsByTransaction(ctx context.Context, transactionID string) ([]domain.CurrencyMovement, error)
}

// MovementWriter appends to the movement ledger. Rows are never updated or deleted.
type MovementWriter interface {
	InsertMovementTx(ctx context.Context, tx pgx.Tx, movement domain.CurrencyMovement) error
	ListMovementsByTransactionTx(ctx context.Context, tx pgx.Tx, transactionID string) ([]domain.CurrencyMovement, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
