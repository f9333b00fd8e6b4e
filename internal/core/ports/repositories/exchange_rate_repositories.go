package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateReader defines read operations for exchange rates
type ExchangeRateReader interface {
	// FindCurrentRate returns the most recently effective active rate for the pair at the given time.
	FindCurrentRate(ctx context.Context, base, target domain.CurrencyCode, at time.Time) (*domain.ExchangeRate, error)

	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates returns rates matching the filter ordered by effective date, newest first.
	ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rates
type ExchangeRateWriter interface {
	// DeactivateActiveRatesTx deactivates every active rate of the pair.
	DeactivateActiveRatesTx(ctx context.Context, tx pgx.Tx, base, target domain.CurrencyCode, userID string, now time.Time) error

	InsertExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error

	DeactivateExchangeRate(ctx context.Context, rateID string, userID string, now time.Time) error

	// FindExchangeRateForUpdate selects and locks a rate row.
	FindExchangeRateForUpdate(ctx context.Context, tx pgx.Tx, rateID string) (*domain.ExchangeRate, error)

	// UpdateExchangeRateTx persists rates, expiry, notes and audit fields.
	UpdateExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
