package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the kind of balance-affecting event recorded against a reserve.
type MovementType string

const (
	MovementRestock    MovementType = "RESTOCK"
	MovementDeposit    MovementType = "DEPOSIT" // deposit to the central bank, decreases the reserve
	MovementExchange   MovementType = "EXCHANGE"
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementTransfer   MovementType = "TRANSFER"
)

// IsValid reports whether t is a known movement kind.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementRestock, MovementDeposit, MovementExchange, MovementAdjustment, MovementTransfer:
		return true
	}
	return false
}

// CurrencyMovement is a single signed ledger entry. Rows are written once and never updated.
type CurrencyMovement struct {
	MovementID            string          `json:"movementID"` // Primary Key (UUID)
	Sequence              int64           `json:"sequence"`   // Assigned by storage, orders rows written in the same instant
	ReserveID             string          `json:"reserveID"`
	Currency              CurrencyCode    `json:"currency"`
	MovementType          MovementType    `json:"movementType"`
	Amount                decimal.Decimal `json:"amount"` // positive increases the reserve
	BalanceBefore         decimal.Decimal `json:"balanceBefore"`
	BalanceAfter          decimal.Decimal `json:"balanceAfter"`
	Reference             string          `json:"reference"`
	ExchangeTransactionID *string         `json:"exchangeTransactionID,omitempty"`
	Description           string          `json:"description"`
	Notes                 string          `json:"notes"`
	MovementDate          time.Time       `json:"movementDate"`
	ProcessedBy           string          `json:"processedBy"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// IsConsistent checks the snapshot invariant BalanceAfter == BalanceBefore + Amount.
func (m CurrencyMovement) IsConsistent() bool {
	return m.BalanceBefore.Add(m.Amount).Equal(m.BalanceAfter)
}

// ReplayBalance sums the movements of one reserve in time order starting from zero.
// The input slice is not modified.
func ReplayBalance(movements []CurrencyMovement) decimal.Decimal {
	ordered := make([]CurrencyMovement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].MovementDate.Equal(ordered[j].MovementDate) {
			return ordered[i].MovementDate.Before(ordered[j].MovementDate)
		}
		return ordered[i].Sequence < ordered[j].Sequence
	})

	balance := decimal.Zero
	for _, m := range ordered {
		balance = balance.Add(m.Amount)
	}
	return balance
}

// LedgerCheck is the outcome of replaying a reserve's movements against its stored balance.
type LedgerCheck struct {
	ReserveID       string          `json:"reserveID"`
	StoredBalance   decimal.Decimal `json:"storedBalance"`
	ReplayedBalance decimal.Decimal `json:"replayedBalance"`
	MovementCount   int             `json:"movementCount"`
	Consistent      bool            `json:"consistent"`
}
