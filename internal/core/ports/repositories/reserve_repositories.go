package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ReserveReader defines read operations for currency reserves
type ReserveReader interface {
	// FindReserveByID retrieves a reserve by its unique identifier.
	FindReserveByID(ctx context.Context, reserveID string) (*domain.CurrencyReserve, error)

	// FindReserveByBranchAndCurrency retrieves the reserve a branch holds in one currency.
	FindReserveByBranchAndCurrency(ctx context.Context, branchID string, currency domain.CurrencyCode) (*domain.CurrencyReserve, error)

	// ListReservesByBranch retrieves every reserve of a branch ordered by currency.
	ListReservesByBranch(ctx context.Context, branchID string) ([]domain.CurrencyReserve, error)
}

// ReserveWriter defines write operations for currency reserves outside of balance changes
type ReserveWriter interface {
	// CreateReserveIfAbsent inserts the reserve unless one already exists for the branch and currency.
	CreateReserveIfAbsent(ctx context.Context, reserve domain.CurrencyReserve) error

	// UpdateReserveLimits persists new minimum, maximum and daily limits.
	UpdateReserveLimits(ctx context.Context, reserve domain.CurrencyReserve) error

	// ResetDailyUsage zeroes the daily used counter and stamps the reset time.
	ResetDailyUsage(ctx context.Context, reserveID string, asOf time.Time, userID string, now time.Time) error

	// DeactivateReserve marks a reserve as inactive.
	DeactivateReserve(ctx context.Context, reserveID string, userID string, now time.Time) error
}

// ReserveTransactionSupport defines balance operations executed inside a database transaction
type ReserveTransactionSupport interface {
	// FindReservesForUpdate selects reserves and locks them for update within a transaction.
	// Rows are locked in ascending id order.
	FindReservesForUpdate(ctx context.Context, tx pgx.Tx, reserveIDs []string) (map[string]domain.CurrencyReserve, error)

	// UpdateReserveBalanceTx persists balance, daily usage, restock/deposit dates and audit fields.
	UpdateReserveBalanceTx(ctx context.Context, tx pgx.Tx, reserve domain.CurrencyReserve) error
}

// ReserveRepositoryFacade combines all reserve-related repository interfaces
type ReserveRepositoryFacade interface {
	ReserveReader
	ReserveWriter
	ReserveTransactionSupport
}
