package dto

import (
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateReserveLimitsRequest defines the payload for changing a reserve's limits.
type UpdateReserveLimitsRequest struct {
	MinimumBalance decimal.Decimal `json:"minimumBalance"`
	MaximumBalance decimal.Decimal `json:"maximumBalance"`
	DailyLimit     decimal.Decimal `json:"dailyLimit"`
	Notes          *string         `json:"notes,omitempty" binding:"omitempty,max=500"`
}

// ResetDailyUsageRequest defines the payload for resetting a reserve's daily usage.
// AsOf defaults to the current time.
type ResetDailyUsageRequest struct {
	AsOf *time.Time `json:"asOf,omitempty"`
}

// ReserveResponse defines the data returned for a currency reserve.
type ReserveResponse struct {
	ReserveID         string          `json:"reserveID"`
	BranchID          string          `json:"branchID"`
	BranchName        string          `json:"branchName"`
	Currency          string          `json:"currency"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	MinimumBalance    decimal.Decimal `json:"minimumBalance"`
	MaximumBalance    decimal.Decimal `json:"maximumBalance"`
	DailyLimit        decimal.Decimal `json:"dailyLimit"`
	DailyUsed         decimal.Decimal `json:"dailyUsed"`
	DailyRemaining    decimal.Decimal `json:"dailyRemaining"`
	DailyUsageResetAt *time.Time      `json:"dailyUsageResetAt,omitempty"`
	LastRestockDate   *time.Time      `json:"lastRestockDate,omitempty"`
	LastDepositDate   *time.Time      `json:"lastDepositDate,omitempty"`
	IsActive          bool            `json:"isActive"`
	BelowMinimum      bool            `json:"belowMinimum"`
	AboveMaximum      bool            `json:"aboveMaximum"`
	Notes             string          `json:"notes"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy     string          `json:"lastUpdatedBy"`
}

// ToReserveResponse converts a domain.CurrencyReserve to a ReserveResponse DTO
func ToReserveResponse(r *domain.CurrencyReserve) ReserveResponse {
	return ReserveResponse{
		ReserveID:         r.ReserveID,
		BranchID:          r.BranchID,
		BranchName:        r.BranchName,
		Currency:          string(r.Currency),
		CurrentBalance:    r.CurrentBalance,
		MinimumBalance:    r.MinimumBalance,
		MaximumBalance:    r.MaximumBalance,
		DailyLimit:        r.DailyLimit,
		DailyUsed:         r.DailyUsed,
		DailyRemaining:    r.DailyRemaining(),
		DailyUsageResetAt: r.DailyUsageResetAt,
		LastRestockDate:   r.LastRestockDate,
		LastDepositDate:   r.LastDepositDate,
		IsActive:          r.IsActive,
		BelowMinimum:      r.CurrentBalance.LessThan(r.MinimumBalance),
		AboveMaximum:      r.CurrentBalance.GreaterThan(r.MaximumBalance),
		Notes:             r.Notes,
		LastUpdatedAt:     r.LastUpdatedAt,
		LastUpdatedBy:     r.LastUpdatedBy,
	}
}

// ListReservesResponse wraps the reserves of a branch.
type ListReservesResponse struct {
	Reserves []ReserveResponse `json:"reserves"`
}

// ToListReservesResponse converts a slice of domain.CurrencyReserve to a ListReservesResponse
func ToListReservesResponse(reserves []domain.CurrencyReserve) ListReservesResponse {
	res := make([]ReserveResponse, len(reserves))
	for i := range reserves {
		res[i] = ToReserveResponse(&reserves[i])
	}
	return ListReservesResponse{Reserves: res}
}
