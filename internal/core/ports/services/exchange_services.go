package services

import (
	"context"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
)

// ExchangeProcessorSvc executes and reverses currency exchanges
type ExchangeProcessorSvc interface {
	// CalculateExchange quotes an exchange against the current rate and reserves without changing anything.
	CalculateExchange(ctx context.Context, branchID string, req dto.CalculateExchangeRequest) (*domain.ExchangeCalculation, error)

	// ProcessExchange moves both reserves and records both ledger legs as one unit.
	// A repeated idempotency key returns the transaction created the first time.
	ProcessExchange(ctx context.Context, branchID string, req dto.CreateExchangeRequest, userID string) (*domain.ExchangeTransaction, error)

	// ReverseExchange writes compensating movements for a completed exchange and cancels it.
	ReverseExchange(ctx context.Context, transactionID string, reason string, userID string) (*domain.ExchangeTransaction, error)
}

// ExchangeReaderSvc defines read operations for exchange transactions
type ExchangeReaderSvc interface {
	GetExchangeTransaction(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error)
	ListExchangeTransactions(ctx context.Context, filter domain.ExchangeFilter) ([]domain.ExchangeTransaction, error)

	// PrintReceipt renders the customer receipt and flags it as printed.
	PrintReceipt(ctx context.Context, transactionID string, userID string) (*domain.ExchangeTransaction, string, error)
}

// ExchangeSvcFacade combines all exchange-related service interfaces
type ExchangeSvcFacade interface {
	ExchangeProcessorSvc
	ExchangeReaderSvc
}

// ExchangeRateSvcFacade defines operations on published exchange rates
type ExchangeRateSvcFacade interface {
	GetCurrentRate(ctx context.Context, base, target domain.CurrencyCode) (*domain.ExchangeRate, error)
	GetExchangeRate(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates searches the rate history, newest effective date first.
	ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error)

	// CreateExchangeRate publishes a rate and deactivates the pair's previously active rates.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, userID string) (*domain.ExchangeRate, error)

	// UpdateExchangeRate corrects an active rate in place. Inactive rates are rejected.
	UpdateExchangeRate(ctx context.Context, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error)

	DeactivateExchangeRate(ctx context.Context, rateID string, userID string) error
}
