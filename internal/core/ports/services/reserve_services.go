package services

import (
	"context"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
)

// ReserveReaderSvc defines read operations for branch reserves
type ReserveReaderSvc interface {
	// GetOrCreateReserve returns the branch reserve for a currency, creating it with default limits on first access.
	GetOrCreateReserve(ctx context.Context, branchID string, currency domain.CurrencyCode, userID string) (*domain.CurrencyReserve, error)

	GetReserve(ctx context.Context, reserveID string) (*domain.CurrencyReserve, error)

	// ListBranchReserves ensures the branch holds a reserve per supported currency and returns the active ones.
	ListBranchReserves(ctx context.Context, branchID string, userID string) ([]domain.CurrencyReserve, error)
}

// ReserveWriterSvc defines configuration changes on reserves
type ReserveWriterSvc interface {
	UpdateLimits(ctx context.Context, reserveID string, req dto.UpdateReserveLimitsRequest, userID string) (*domain.CurrencyReserve, error)

	// ResetDailyUsage zeroes the outgoing volume counted against the daily limit.
	// Triggering it at a business-day boundary is the caller's responsibility.
	ResetDailyUsage(ctx context.Context, reserveID string, asOf time.Time, userID string) (*domain.CurrencyReserve, error)

	DeactivateReserve(ctx context.Context, reserveID string, userID string) error
}

// MovementSvc defines ledger operations on a single reserve
type MovementSvc interface {
	// AddManualMovement records a restock, a deposit to the central bank or an adjustment.
	AddManualMovement(ctx context.Context, req dto.CreateMovementRequest, userID string) (*domain.CurrencyMovement, error)

	// ListMovements returns a reserve statement, newest first.
	ListMovements(ctx context.Context, reserveID string, from, to *time.Time) ([]domain.CurrencyMovement, error)

	// VerifyLedger replays the movements of a reserve and compares the result with its stored balance.
	VerifyLedger(ctx context.Context, reserveID string) (*domain.LedgerCheck, error)
}

// ReserveSvcFacade combines all reserve-related service interfaces
type ReserveSvcFacade interface {
	ReserveReaderSvc
	ReserveWriterSvc
	MovementSvc
}
