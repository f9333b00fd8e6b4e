package dto

import (
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateExchangeRequest defines the payload for quoting an exchange.
type CalculateExchangeRequest struct {
	Direction      string           `json:"direction" binding:"required,oneof=PURCHASE SALE"`
	Amount         decimal.Decimal  `json:"amount"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
}

// CreateExchangeRequest defines the payload for executing an exchange.
type CreateExchangeRequest struct {
	Direction        string           `json:"direction" binding:"required,oneof=PURCHASE SALE"`
	Amount           decimal.Decimal  `json:"amount"`
	CommissionRate   *decimal.Decimal `json:"commissionRate,omitempty"`
	CustomerName     string           `json:"customerName" binding:"max=200"`
	CustomerDocument string           `json:"customerDocument" binding:"max=100"`
	CustomerPhone    string           `json:"customerPhone" binding:"max=30"`
	Notes            string           `json:"notes" binding:"max=500"`
	IdempotencyKey   string           `json:"idempotencyKey" binding:"max=100"`
}

// ReverseExchangeRequest defines the payload for reversing an exchange.
type ReverseExchangeRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListExchangesParams defines query parameters for listing exchange transactions.
type ListExchangesParams struct {
	BranchID  string     `form:"branchID"`
	Status    string     `form:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED FAILED"`
	Direction string     `form:"direction" binding:"omitempty,oneof=PURCHASE SALE"`
	From      *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit     int        `form:"limit,default=20" binding:"min=1,max=200"`
	Offset    int        `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts the query parameters to a domain filter.
// The 'to' date is inclusive, so the filter ends at the start of the following day.
func (p ListExchangesParams) ToFilter() domain.ExchangeFilter {
	var to *time.Time
	if p.To != nil {
		end := p.To.AddDate(0, 0, 1)
		to = &end
	}
	return domain.ExchangeFilter{
		BranchID:  p.BranchID,
		Status:    domain.ExchangeStatus(p.Status),
		Direction: domain.ExchangeDirection(p.Direction),
		From:      p.From,
		To:        to,
		Limit:     p.Limit,
		Offset:    p.Offset,
	}
}

// ExchangeResponse defines the data returned for an exchange transaction.
type ExchangeResponse struct {
	TransactionID     string          `json:"transactionID"`
	TransactionNumber string          `json:"transactionNumber"`
	BranchID          string          `json:"branchID"`
	BranchName        string          `json:"branchName"`
	ExchangeRateID    string          `json:"exchangeRateID"`
	Direction         string          `json:"direction"`
	FromCurrency      string          `json:"fromCurrency"`
	ToCurrency        string          `json:"toCurrency"`
	FromAmount        decimal.Decimal `json:"fromAmount"`
	ToAmount          decimal.Decimal `json:"toAmount"`
	AppliedRate       decimal.Decimal `json:"appliedRate"`
	CommissionRate    decimal.Decimal `json:"commissionRate"`
	CommissionAmount  decimal.Decimal `json:"commissionAmount"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	CustomerName      string          `json:"customerName"`
	CustomerDocument  string          `json:"customerDocument"`
	CustomerPhone     string          `json:"customerPhone"`
	Status            string          `json:"status"`
	TransactionDate   time.Time       `json:"transactionDate"`
	ProcessedBy       string          `json:"processedBy"`
	Notes             string          `json:"notes"`
	ReceiptNumber     string          `json:"receiptNumber"`
	ReceiptPrinted    bool            `json:"receiptPrinted"`
	Reversed          bool            `json:"reversed"`
	ReversedAt        *time.Time      `json:"reversedAt,omitempty"`
	ReversedBy        *string         `json:"reversedBy,omitempty"`
	ReversalReason    *string         `json:"reversalReason,omitempty"`
}

// ToExchangeResponse converts a domain.ExchangeTransaction to an ExchangeResponse DTO
func ToExchangeResponse(t *domain.ExchangeTransaction) ExchangeResponse {
	return ExchangeResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		BranchID:          t.BranchID,
		BranchName:        t.BranchName,
		ExchangeRateID:    t.ExchangeRateID,
		Direction:         string(t.Direction),
		FromCurrency:      string(t.FromCurrency),
		ToCurrency:        string(t.ToCurrency),
		FromAmount:        t.FromAmount,
		ToAmount:          t.ToAmount,
		AppliedRate:       t.AppliedRate,
		CommissionRate:    t.CommissionRate,
		CommissionAmount:  t.CommissionAmount,
		NetAmount:         t.NetAmount,
		CustomerName:      t.CustomerName,
		CustomerDocument:  t.CustomerDocument,
		CustomerPhone:     t.CustomerPhone,
		Status:            string(t.Status),
		TransactionDate:   t.TransactionDate,
		ProcessedBy:       t.ProcessedBy,
		Notes:             t.Notes,
		ReceiptNumber:     t.ReceiptNumber,
		ReceiptPrinted:    t.ReceiptPrinted,
		Reversed:          t.Reversed,
		ReversedAt:        t.ReversedAt,
		ReversedBy:        t.ReversedBy,
		ReversalReason:    t.ReversalReason,
	}
}

// ListExchangesResponse wraps a page of exchange transactions.
type ListExchangesResponse struct {
	Exchanges []ExchangeResponse `json:"exchanges"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ToListExchangesResponse converts a slice of domain.ExchangeTransaction to a ListExchangesResponse
func ToListExchangesResponse(txns []domain.ExchangeTransaction, limit, offset int) ListExchangesResponse {
	res := make([]ExchangeResponse, len(txns))
	for i := range txns {
		res[i] = ToExchangeResponse(&txns[i])
	}
	return ListExchangesResponse{Exchanges: res, Limit: limit, Offset: offset}
}

// ReceiptResponse carries the rendered receipt text.
type ReceiptResponse struct {
	TransactionID string `json:"transactionID"`
	ReceiptNumber string `json:"receiptNumber"`
	Text          string `json:"text"`
}
