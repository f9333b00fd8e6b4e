package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// CurrencyCode is the closed set of currencies a branch can hold in reserve.
type CurrencyCode string

const (
	HTG CurrencyCode = "HTG" // Haitian gourde
	USD CurrencyCode = "USD" // US dollar
)

// SupportedCurrencies lists every currency a branch keeps a reserve for, in display order.
var SupportedCurrencies = []CurrencyCode{HTG, USD}

// IsValid reports whether c is one of the supported currencies.
func (c CurrencyCode) IsValid() bool {
	return c == HTG || c == USD
}

// ParseCurrencyCode normalizes and validates a currency code.
func ParseCurrencyCode(s string) (CurrencyCode, error) {
	c := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unsupported currency code %q", apperrors.ErrValidation, s)
	}
	return c, nil
}

// CheckCents rejects amounts carrying more precision than the ledger stores.
func CheckCents(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(2)) {
		return fmt.Errorf("%w: amount %s has more than two decimal places", apperrors.ErrInvalidAmount, amount.String())
	}
	return nil
}

// ReservePolicy holds the limits applied to a reserve when it is first created.
type ReservePolicy struct {
	MinimumBalance decimal.Decimal
	MaximumBalance decimal.Decimal
	DailyLimit     decimal.Decimal
}

// DefaultReservePolicy returns the limits a freshly created reserve starts with.
func DefaultReservePolicy(c CurrencyCode) ReservePolicy {
	if c == USD {
		return ReservePolicy{
			MinimumBalance: decimal.NewFromInt(1_000),
			MaximumBalance: decimal.NewFromInt(50_000),
			DailyLimit:     decimal.NewFromInt(10_000),
		}
	}
	return ReservePolicy{
		MinimumBalance: decimal.NewFromInt(50_000),
		MaximumBalance: decimal.NewFromInt(2_000_000),
		DailyLimit:     decimal.NewFromInt(500_000),
	}
}
