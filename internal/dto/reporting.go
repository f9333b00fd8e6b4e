package dto

import (
	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
)

// ReportDateParams selects the business day of a report. Empty means today.
type ReportDateParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// DailyExchangeReportResponse lists a branch's exchanges for one day together with the summary.
type DailyExchangeReportResponse struct {
	Summary   domain.ExchangeSummary `json:"summary"`
	Exchanges []ExchangeResponse     `json:"exchanges"`
}

// LedgerCheckResponse reports whether a reserve's movements replay to its stored balance.
type LedgerCheckResponse = domain.LedgerCheck
