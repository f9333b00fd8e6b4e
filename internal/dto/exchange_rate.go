package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for publishing a new exchange rate.
type CreateExchangeRateRequest struct {
	BaseCurrency   string          `json:"baseCurrency" binding:"required,currency"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,currency,nefield=BaseCurrency"`
	BuyingRate     decimal.Decimal `json:"buyingRate"`
	SellingRate    decimal.Decimal `json:"sellingRate"`
	EffectiveDate  *time.Time      `json:"effectiveDate,omitempty"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	UpdateMethod   string          `json:"updateMethod" binding:"omitempty,oneof=MANUAL AUTOMATIC"`
	Notes          string          `json:"notes" binding:"max=500"`
}

// UpdateExchangeRateRequest defines the correctable fields of an active exchange rate.
type UpdateExchangeRateRequest struct {
	BuyingRate  decimal.Decimal `json:"buyingRate"`
	SellingRate decimal.Decimal `json:"sellingRate"`
	ExpiryDate  *time.Time      `json:"expiryDate,omitempty"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// ListExchangeRatesParams defines query parameters for searching the rate history.
type ListExchangeRatesParams struct {
	Base     string     `form:"base" binding:"omitempty,currency"`
	Target   string     `form:"target" binding:"omitempty,currency"`
	IsActive *bool      `form:"isActive"`
	From     *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To       *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit    int        `form:"limit,default=20" binding:"min=1,max=200"`
	Offset   int        `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts the query parameters to a domain filter.
// The 'to' date is inclusive, so the filter ends at the start of the following day.
func (p ListExchangeRatesParams) ToFilter() domain.ExchangeRateFilter {
	var to *time.Time
	if p.To != nil {
		end := p.To.AddDate(0, 0, 1)
		to = &end
	}
	return domain.ExchangeRateFilter{
		BaseCurrency:   domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(p.Base))),
		TargetCurrency: domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(p.Target))),
		IsActive:       p.IsActive,
		EffectiveFrom:  p.From,
		EffectiveTo:    to,
		Limit:          p.Limit,
		Offset:         p.Offset,
	}
}

// CurrentRateParams selects the currency pair for a current rate lookup.
type CurrentRateParams struct {
	Base   string `form:"base,default=HTG" binding:"currency"`
	Target string `form:"target,default=USD" binding:"currency"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	BuyingRate     decimal.Decimal `json:"buyingRate"`
	SellingRate    decimal.Decimal `json:"sellingRate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	UpdateMethod   string          `json:"updateMethod"`
	IsActive       bool            `json:"isActive"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		BaseCurrency:   string(rate.BaseCurrency),
		TargetCurrency: string(rate.TargetCurrency),
		BuyingRate:     rate.BuyingRate,
		SellingRate:    rate.SellingRate,
		EffectiveDate:  rate.EffectiveDate,
		ExpiryDate:     rate.ExpiryDate,
		UpdateMethod:   string(rate.UpdateMethod),
		IsActive:       rate.IsActive,
		Notes:          rate.Notes,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ListExchangeRatesResponse wraps a page of exchange rates.
type ListExchangeRatesResponse struct {
	Rates  []ExchangeRateResponse `json:"rates"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

// ToListExchangeRatesResponse converts a slice of domain.ExchangeRate to a ListExchangeRatesResponse
func ToListExchangeRatesResponse(rates []domain.ExchangeRate, limit, offset int) ListExchangeRatesResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		res[i] = ToExchangeRateResponse(&rates[i])
	}
	return ListExchangeRatesResponse{Rates: res, Limit: limit, Offset: offset}
}
