package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeSummary is the per-branch, per-day rollup of completed exchanges.
// Commission is earned in the currency paid out, so it is reported per currency.
type ExchangeSummary struct {
	BranchID            string          `json:"branchID"`
	BranchName          string          `json:"branchName"`
	ReportDate          time.Time       `json:"reportDate"`
	HTGBalance          decimal.Decimal `json:"htgBalance"`
	USDBalance          decimal.Decimal `json:"usdBalance"`
	TotalTransactions   int             `json:"totalTransactions"`
	TotalHTGSold        decimal.Decimal `json:"totalHTGSold"` // HTG received from customers
	TotalUSDSold        decimal.Decimal `json:"totalUSDSold"` // USD received from customers
	CommissionEarnedHTG decimal.Decimal `json:"commissionEarnedHTG"`
	CommissionEarnedUSD decimal.Decimal `json:"commissionEarnedUSD"`
	HTGDailyLimit       decimal.Decimal `json:"htgDailyLimit"`
	HTGDailyUsed        decimal.Decimal `json:"htgDailyUsed"`
	USDDailyLimit       decimal.Decimal `json:"usdDailyLimit"`
	USDDailyUsed        decimal.Decimal `json:"usdDailyUsed"`
}

// Accumulate folds one transaction into the summary. Reversed and non-completed transactions are ignored.
func (s *ExchangeSummary) Accumulate(t ExchangeTransaction) {
	if t.Status != ExchangeCompleted || t.Reversed {
		return
	}
	s.TotalTransactions++
	switch t.FromCurrency {
	case HTG:
		s.TotalHTGSold = s.TotalHTGSold.Add(t.FromAmount)
	case USD:
		s.TotalUSDSold = s.TotalUSDSold.Add(t.FromAmount)
	}
	switch t.ToCurrency {
	case HTG:
		s.CommissionEarnedHTG = s.CommissionEarnedHTG.Add(t.CommissionAmount)
	case USD:
		s.CommissionEarnedUSD = s.CommissionEarnedUSD.Add(t.CommissionAmount)
	}
}

// ApplyReserve copies balance and limit utilisation from a branch reserve.
func (s *ExchangeSummary) ApplyReserve(r CurrencyReserve) {
	switch r.Currency {
	case HTG:
		s.HTGBalance = r.CurrentBalance
		s.HTGDailyLimit = r.DailyLimit
		s.HTGDailyUsed = r.DailyUsed
	case USD:
		s.USDBalance = r.CurrentBalance
		s.USDDailyLimit = r.DailyLimit
		s.USDDailyUsed = r.DailyUsed
	}
}

// ExchangeFilter narrows transaction listings.
type ExchangeFilter struct {
	BranchID  string
	Status    ExchangeStatus
	Direction ExchangeDirection
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// DayBounds returns [start, end) of the calendar day containing t, in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
