package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateUpdateMethod records how a rate was published.
type RateUpdateMethod string

const (
	RateManual    RateUpdateMethod = "MANUAL"
	RateAutomatic RateUpdateMethod = "AUTOMATIC"
)

// ExchangeRate is a published buying/selling rate for a currency pair.
type ExchangeRate struct {
	ExchangeRateID string           `json:"exchangeRateID"` // Primary Key (UUID)
	BaseCurrency   CurrencyCode     `json:"baseCurrency"`
	TargetCurrency CurrencyCode     `json:"targetCurrency"`
	BuyingRate     decimal.Decimal  `json:"buyingRate"`
	SellingRate    decimal.Decimal  `json:"sellingRate"`
	EffectiveDate  time.Time        `json:"effectiveDate"`
	ExpiryDate     *time.Time       `json:"expiryDate,omitempty"`
	UpdateMethod   RateUpdateMethod `json:"updateMethod"`
	IsActive       bool             `json:"isActive"`
	Notes          string           `json:"notes"`
	AuditFields
}

// CheckUsableAt fails with ErrInvalidRate if the rate is inactive, not yet effective or expired at t.
func (r ExchangeRate) CheckUsableAt(t time.Time) error {
	switch {
	case !r.IsActive:
		return fmt.Errorf("%w: rate %s is inactive", apperrors.ErrInvalidRate, r.ExchangeRateID)
	case r.EffectiveDate.After(t):
		return fmt.Errorf("%w: rate %s is effective from %s", apperrors.ErrInvalidRate, r.ExchangeRateID, r.EffectiveDate.Format(time.RFC3339))
	case r.ExpiryDate != nil && !r.ExpiryDate.After(t):
		return fmt.Errorf("%w: rate %s expired at %s", apperrors.ErrInvalidRate, r.ExchangeRateID, r.ExpiryDate.Format(time.RFC3339))
	case !r.BuyingRate.IsPositive() || !r.SellingRate.IsPositive():
		return fmt.Errorf("%w: rate %s has non-positive values", apperrors.ErrInvalidRate, r.ExchangeRateID)
	}
	return nil
}

// IsUsableAt reports whether the rate may be applied at t.
func (r ExchangeRate) IsUsableAt(t time.Time) bool {
	return r.CheckUsableAt(t) == nil
}

// ValidateRateSpread checks both rates are positive and the branch sells above what it buys.
func ValidateRateSpread(buying, selling decimal.Decimal) error {
	if !buying.IsPositive() || !selling.IsPositive() {
		return fmt.Errorf("%w: buying and selling rates must be positive", apperrors.ErrValidation)
	}
	if !selling.GreaterThan(buying) {
		return fmt.Errorf("%w: selling rate %s must be greater than buying rate %s",
			apperrors.ErrValidation, selling.String(), buying.String())
	}
	return nil
}

// ExchangeRateFilter narrows a rate history search. Zero values match everything.
type ExchangeRateFilter struct {
	BaseCurrency   CurrencyCode
	TargetCurrency CurrencyCode
	IsActive       *bool
	EffectiveFrom  *time.Time // inclusive
	EffectiveTo    *time.Time // exclusive
	Limit          int
	Offset         int
}
