package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CurrencyReserve is the physical cash a branch holds in one currency.
type CurrencyReserve struct {
	ReserveID         string          `json:"reserveID"` // Primary Key (UUID)
	BranchID          string          `json:"branchID"`
	BranchName        string          `json:"branchName"`
	Currency          CurrencyCode    `json:"currency"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	MinimumBalance    decimal.Decimal `json:"minimumBalance"`
	MaximumBalance    decimal.Decimal `json:"maximumBalance"`
	DailyLimit        decimal.Decimal `json:"dailyLimit"`
	DailyUsed         decimal.Decimal `json:"dailyUsed"`
	DailyUsageResetAt *time.Time      `json:"dailyUsageResetAt,omitempty"`
	LastRestockDate   *time.Time      `json:"lastRestockDate,omitempty"`
	LastDepositDate   *time.Time      `json:"lastDepositDate,omitempty"`
	IsActive          bool            `json:"isActive"`
	Notes             string          `json:"notes"`
	AuditFields
}

// NewCurrencyReserve builds an empty, active reserve using the default policy for the currency.
func NewCurrencyReserve(reserveID, branchID, branchName string, currency CurrencyCode, userID string, now time.Time) CurrencyReserve {
	policy := DefaultReservePolicy(currency)
	return CurrencyReserve{
		ReserveID:      reserveID,
		BranchID:       branchID,
		BranchName:     branchName,
		Currency:       currency,
		CurrentBalance: decimal.Zero,
		MinimumBalance: policy.MinimumBalance,
		MaximumBalance: policy.MaximumBalance,
		DailyLimit:     policy.DailyLimit,
		DailyUsed:      decimal.Zero,
		IsActive:       true,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// DailyRemaining is the outgoing exchange volume still allowed today.
func (r CurrencyReserve) DailyRemaining() decimal.Decimal {
	remaining := r.DailyLimit.Sub(r.DailyUsed)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// CheckDailyLimit fails with ErrDailyLimitExceeded if paying out amount would push DailyUsed past DailyLimit.
func (r CurrencyReserve) CheckDailyLimit(amount decimal.Decimal) error {
	if r.DailyUsed.Add(amount).GreaterThan(r.DailyLimit) {
		return fmt.Errorf("%w: %s reserve of branch %s has %s remaining, %s requested",
			apperrors.ErrDailyLimitExceeded, r.Currency, r.BranchID, r.DailyRemaining().StringFixed(2), amount.StringFixed(2))
	}
	return nil
}

// ApplyDelta moves the balance by a signed amount and returns the balance snapshots around the change.
// The reserve is left untouched when the result would be negative.
// Outgoing exchange legs count against the daily limit; restocks and deposits stamp their dates.
func (r *CurrencyReserve) ApplyDelta(delta decimal.Decimal, kind MovementType, userID string, now time.Time) (decimal.Decimal, decimal.Decimal, error) {
	before := r.CurrentBalance
	after := before.Add(delta)
	if after.IsNegative() {
		return before, before, fmt.Errorf("%w: %s reserve of branch %s holds %s, change of %s requested",
			apperrors.ErrInsufficientBalance, r.Currency, r.BranchID, before.StringFixed(2), delta.StringFixed(2))
	}

	r.CurrentBalance = after
	switch kind {
	case MovementExchange:
		if delta.IsNegative() {
			r.DailyUsed = r.DailyUsed.Add(delta.Neg())
		}
	case MovementRestock:
		r.LastRestockDate = &now
	case MovementDeposit:
		r.LastDepositDate = &now
	}
	r.LastUpdatedAt = now
	r.LastUpdatedBy = userID
	return before, after, nil
}

// ReleaseDailyUsage gives back outgoing volume, e.g. when an exchange is reversed. DailyUsed never drops below zero.
func (r *CurrencyReserve) ReleaseDailyUsage(amount decimal.Decimal) {
	r.DailyUsed = r.DailyUsed.Sub(amount)
	if r.DailyUsed.IsNegative() {
		r.DailyUsed = decimal.Zero
	}
}

// CountsTowardsCurrentDay reports whether an event at t falls inside the current daily-usage window.
func (r CurrencyReserve) CountsTowardsCurrentDay(t time.Time) bool {
	return r.DailyUsageResetAt == nil || !t.Before(*r.DailyUsageResetAt)
}

// ValidateLimits checks a min/max/daily configuration.
func ValidateLimits(minimum, maximum, dailyLimit decimal.Decimal) error {
	if minimum.IsNegative() || maximum.IsNegative() || dailyLimit.IsNegative() {
		return fmt.Errorf("%w: limits must not be negative", apperrors.ErrInvalidConfiguration)
	}
	for _, limit := range []decimal.Decimal{minimum, maximum, dailyLimit} {
		if !limit.Equal(limit.Truncate(2)) {
			return fmt.Errorf("%w: limit %s has more than two decimal places", apperrors.ErrInvalidConfiguration, limit.String())
		}
	}
	if maximum.LessThanOrEqual(minimum) {
		return fmt.Errorf("%w: maximum balance %s must be greater than minimum balance %s",
			apperrors.ErrInvalidConfiguration, maximum.String(), minimum.String())
	}
	return nil
}
