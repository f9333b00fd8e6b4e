package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeTransactionReader defines read operations for exchange transactions
type ExchangeTransactionReader interface {
	FindExchangeTransactionByID(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error)

	// FindExchangeTransactionByIdempotencyKey returns the transaction a branch created with the given key.
	FindExchangeTransactionByIdempotencyKey(ctx context.Context, branchID, key string) (*domain.ExchangeTransaction, error)

	// ListExchangeTransactions returns transactions matching the filter, newest first.
	ListExchangeTransactions(ctx context.Context, filter domain.ExchangeFilter) ([]domain.ExchangeTransaction, error)
}

// ExchangeTransactionWriter defines write operations for exchange transactions
type ExchangeTransactionWriter interface {
	MarkReceiptPrinted(ctx context.Context, transactionID string, userID string, now time.Time) error
}

// ExchangeTransactionSupport defines operations executed inside the processing transaction
type ExchangeTransactionSupport interface {
	// NextDailySequenceTx returns the next number of the per-branch, per-day counter.
	NextDailySequenceTx(ctx context.Context, tx pgx.Tx, branchID string, day time.Time) (int64, error)

	InsertExchangeTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.ExchangeTransaction) error
	UpdateExchangeTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.ExchangeTransaction) error

	// FindExchangeTransactionForUpdate selects and locks a transaction row.
	FindExchangeTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.ExchangeTransaction, error)
}

// ExchangeTransactionRepositoryFacade combines all exchange transaction interfaces
type ExchangeTransactionRepositoryFacade interface {
	ExchangeTransactionReader
	ExchangeTransactionWriter
	ExchangeTransactionSupport
}
