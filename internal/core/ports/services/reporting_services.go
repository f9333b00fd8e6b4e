package services

import (
	"context"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
)

// ReportingSvc defines read-only rollups over exchanges and reserves
type ReportingSvc interface {
	// GetExchangeSummary totals a branch's completed exchanges for the day containing date.
	GetExchangeSummary(ctx context.Context, branchID string, date time.Time) (*domain.ExchangeSummary, error)

	// GetDailyExchangeReport returns the summary along with every exchange of the day.
	GetDailyExchangeReport(ctx context.Context, branchID string, date time.Time) (*domain.ExchangeSummary, []domain.ExchangeTransaction, error)
}
