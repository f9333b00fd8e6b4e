package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExchangeDirection is the side of the trade from the customer's point of view.
type ExchangeDirection string

const (
	Purchase ExchangeDirection = "PURCHASE" // customer buys USD with HTG
	Sale     ExchangeDirection = "SALE"     // customer sells USD for HTG
)

// IsValid reports whether d is a known direction.
func (d ExchangeDirection) IsValid() bool {
	return d == Purchase || d == Sale
}

// Currencies returns the currency received from and the currency handed to the customer.
func (d ExchangeDirection) Currencies() (from CurrencyCode, to CurrencyCode) {
	if d == Purchase {
		return HTG, USD
	}
	return USD, HTG
}

// ExchangeStatus tracks an exchange through processing.
type ExchangeStatus string

const (
	ExchangePending   ExchangeStatus = "PENDING"
	ExchangeCompleted ExchangeStatus = "COMPLETED"
	ExchangeCancelled ExchangeStatus = "CANCELLED"
	ExchangeFailed    ExchangeStatus = "FAILED"
)

// ExchangeTransaction is one currency exchange executed by a teller.
type ExchangeTransaction struct {
	TransactionID     string            `json:"transactionID"` // Primary Key (UUID)
	TransactionNumber string            `json:"transactionNumber"`
	BranchID          string            `json:"branchID"`
	BranchName        string            `json:"branchName"`
	ExchangeRateID    string            `json:"exchangeRateID"`
	Direction         ExchangeDirection `json:"direction"`
	FromCurrency      CurrencyCode      `json:"fromCurrency"`
	ToCurrency        CurrencyCode      `json:"toCurrency"`
	FromAmount        decimal.Decimal   `json:"fromAmount"`
	ToAmount          decimal.Decimal   `json:"toAmount"`
	AppliedRate       decimal.Decimal   `json:"appliedRate"`
	CommissionRate    decimal.Decimal   `json:"commissionRate"`
	CommissionAmount  decimal.Decimal   `json:"commissionAmount"`
	NetAmount         decimal.Decimal   `json:"netAmount"`
	CustomerName      string            `json:"customerName"`
	CustomerDocument  string            `json:"customerDocument"`
	CustomerPhone     string            `json:"customerPhone"`
	Status            ExchangeStatus    `json:"status"`
	TransactionDate   time.Time         `json:"transactionDate"`
	ProcessedBy       string            `json:"processedBy"`
	Notes             string            `json:"notes"`
	ReceiptNumber     string            `json:"receiptNumber"`
	ReceiptPrinted    bool              `json:"receiptPrinted"`
	IdempotencyKey    *string           `json:"idempotencyKey,omitempty"`
	Reversed          bool              `json:"reversed"`
	ReversedAt        *time.Time        `json:"reversedAt,omitempty"`
	ReversedBy        *string           `json:"reversedBy,omitempty"`
	ReversalReason    *string           `json:"reversalReason,omitempty"`
	AuditFields
}

// CanReverse fails unless the transaction is completed and has not been reversed before.
func (t ExchangeTransaction) CanReverse() error {
	if t.Reversed || t.Status == ExchangeCancelled {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrAlreadyReversed, t.TransactionNumber)
	}
	if t.Status != ExchangeCompleted {
		return fmt.Errorf("%w: transaction %s is %s, only completed transactions can be reversed",
			apperrors.ErrConflict, t.TransactionNumber, t.Status)
	}
	return nil
}

// MarkReversed flags the transaction as cancelled by a reversal.
func (t *ExchangeTransaction) MarkReversed(userID, reason string, now time.Time) {
	t.Status = ExchangeCancelled
	t.Reversed = true
	t.ReversedAt = &now
	t.ReversedBy = &userID
	t.ReversalReason = &reason
	if t.Notes == "" {
		t.Notes = "CANCELLED: " + reason
	} else {
		t.Notes = t.Notes + " | CANCELLED: " + reason
	}
	t.LastUpdatedAt = now
	t.LastUpdatedBy = userID
}

// ExchangeCalculation holds the amounts derived from a rate for a requested exchange.
type ExchangeCalculation struct {
	Direction        ExchangeDirection `json:"direction"`
	FromCurrency     CurrencyCode      `json:"fromCurrency"`
	ToCurrency       CurrencyCode      `json:"toCurrency"`
	FromAmount       decimal.Decimal   `json:"fromAmount"`
	ToAmount         decimal.Decimal   `json:"toAmount"`
	AppliedRate      decimal.Decimal   `json:"appliedRate"`
	CommissionRate   decimal.Decimal   `json:"commissionRate"`
	CommissionAmount decimal.Decimal   `json:"commissionAmount"`
	NetAmount        decimal.Decimal   `json:"netAmount"`
	ExchangeRateID   string            `json:"exchangeRateID"`
	IsValid          bool              `json:"isValid"`
	Message          string            `json:"message,omitempty"`
}

// CalculateExchange derives to-amount, commission and net amount for an exchange.
// Purchases divide by the buying rate, sales multiply by the selling rate. Derived amounts are rounded to cents.
func CalculateExchange(rate ExchangeRate, direction ExchangeDirection, amount, commissionRate decimal.Decimal, at time.Time) (ExchangeCalculation, error) {
	if !direction.IsValid() {
		return ExchangeCalculation{}, fmt.Errorf("%w: unknown exchange direction %q", apperrors.ErrValidation, direction)
	}
	if !amount.IsPositive() {
		return ExchangeCalculation{}, fmt.Errorf("%w: exchange amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if err := CheckCents(amount); err != nil {
		return ExchangeCalculation{}, err
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ExchangeCalculation{}, fmt.Errorf("%w: commission rate %s must be in [0, 1)", apperrors.ErrValidation, commissionRate.String())
	}
	if err := rate.CheckUsableAt(at); err != nil {
		return ExchangeCalculation{}, err
	}

	from, to := direction.Currencies()
	if from == to {
		return ExchangeCalculation{}, fmt.Errorf("%w: from and to currency are both %s", apperrors.ErrValidation, from)
	}

	calc := ExchangeCalculation{
		Direction:      direction,
		FromCurrency:   from,
		ToCurrency:     to,
		FromAmount:     amount,
		CommissionRate: commissionRate,
		ExchangeRateID: rate.ExchangeRateID,
	}
	var raw decimal.Decimal
	if direction == Purchase {
		calc.AppliedRate = rate.BuyingRate
		raw = calc.FromAmount.Div(rate.BuyingRate)
	} else {
		calc.AppliedRate = rate.SellingRate
		raw = calc.FromAmount.Mul(rate.SellingRate)
	}
	calc.ToAmount = raw.Round(2)
	calc.CommissionAmount = calc.ToAmount.Mul(commissionRate).Round(2)
	calc.NetAmount = calc.ToAmount.Sub(calc.CommissionAmount)
	if !calc.NetAmount.IsPositive() {
		return ExchangeCalculation{}, fmt.Errorf("%w: amount %s is too small to exchange", apperrors.ErrInvalidAmount, amount.String())
	}
	calc.IsValid = true
	return calc, nil
}

// TransactionNumber formats a human readable number such as EXC-20251008-0001.
func TransactionNumber(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), seq)
}

// ExchangeDescription is the description written on both legs of an exchange.
func ExchangeDescription(from, to CurrencyCode) string {
	return fmt.Sprintf("Currency exchange - %s to %s", from, to)
}

// ReversalReference is the reference written on a compensating movement.
func ReversalReference(original string) string {
	return "REVERSAL-" + original
}

// Receipt renders the plain text receipt handed to the customer.
func (t ExchangeTransaction) Receipt() string {
	var b strings.Builder
	line := strings.Repeat("=", 40)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "CURRENCY EXCHANGE RECEIPT")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Branch: %s\n", t.BranchName)
	fmt.Fprintf(&b, "Receipt: %s\n", t.ReceiptNumber)
	fmt.Fprintf(&b, "Transaction: %s\n", t.TransactionNumber)
	fmt.Fprintf(&b, "Date: %s\n", t.TransactionDate.Format("2006-01-02 15:04"))
	fmt.Fprintln(&b, strings.Repeat("-", 40))
	if t.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", t.CustomerName)
	}
	if t.CustomerDocument != "" {
		fmt.Fprintf(&b, "Document: %s\n", t.CustomerDocument)
	}
	fmt.Fprintf(&b, "Type: %s\n", t.Direction)
	fmt.Fprintf(&b, "Received: %s %s\n", t.FromAmount.StringFixed(2), t.FromCurrency)
	fmt.Fprintf(&b, "Rate: %s\n", t.AppliedRate.String())
	fmt.Fprintf(&b, "Amount: %s %s\n", t.ToAmount.StringFixed(2), t.ToCurrency)
	fmt.Fprintf(&b, "Commission: %s %s\n", t.CommissionAmount.StringFixed(2), t.ToCurrency)
	fmt.Fprintf(&b, "Paid out: %s %s\n", t.NetAmount.StringFixed(2), t.ToCurrency)
	fmt.Fprintf(&b, "Status: %s\n", t.Status)
	fmt.Fprintln(&b, strings.Repeat("-", 40))
	fmt.Fprintf(&b, "Processed by: %s\n", t.ProcessedBy)
	fmt.Fprintln(&b, line)
	return b.String()
}
