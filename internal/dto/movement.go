package dto

import (
	"time"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest defines the payload for a manual restock, deposit or adjustment.
type CreateMovementRequest struct {
	BranchID     string          `json:"branchID" binding:"required,max=64"`
	Currency     string          `json:"currency" binding:"required,currency"`
	MovementType string          `json:"movementType" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Reference    string          `json:"reference" binding:"max=100"`
	Description  string          `json:"description" binding:"max=255"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// ListMovementsParams defines query parameters for a reserve statement.
type ListMovementsParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// Range returns the [from, to) bounds; the 'to' date is inclusive.
func (p ListMovementsParams) Range() (*time.Time, *time.Time) {
	if p.To == nil {
		return p.From, nil
	}
	end := p.To.AddDate(0, 0, 1)
	return p.From, &end
}

// MovementResponse defines the data returned for a ledger movement.
type MovementResponse struct {
	MovementID            string          `json:"movementID"`
	ReserveID             string          `json:"reserveID"`
	Currency              string          `json:"currency"`
	MovementType          string          `json:"movementType"`
	Amount                decimal.Decimal `json:"amount"`
	BalanceBefore         decimal.Decimal `json:"balanceBefore"`
	BalanceAfter          decimal.Decimal `json:"balanceAfter"`
	Reference             string          `json:"reference"`
	ExchangeTransactionID *string         `json:"exchangeTransactionID,omitempty"`
	Description           string          `json:"description"`
	Notes                 string          `json:"notes"`
	MovementDate          time.Time       `json:"movementDate"`
	ProcessedBy           string          `json:"processedBy"`
}

// ToMovementResponse converts a domain.CurrencyMovement to a MovementResponse DTO
func ToMovementResponse(m *domain.CurrencyMovement) MovementResponse {
	return MovementResponse{
		MovementID:            m.MovementID,
		ReserveID:             m.ReserveID,
		Currency:              string(m.Currency),
		MovementType:          string(m.MovementType),
		Amount:                m.Amount,
		BalanceBefore:         m.BalanceBefore,
		BalanceAfter:          m.BalanceAfter,
		Reference:             m.Reference,
		ExchangeTransactionID: m.ExchangeTransactionID,
		Description:           m.Description,
		Notes:                 m.Notes,
		MovementDate:          m.MovementDate,
		ProcessedBy:           m.ProcessedBy,
	}
}

// ListMovementsResponse wraps a reserve statement.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// ToListMovementsResponse converts a slice of domain.CurrencyMovement to a ListMovementsResponse
func ToListMovementsResponse(movements []domain.CurrencyMovement) ListMovementsResponse {
	res := make([]MovementResponse, len(movements))
	for i := range movements {
		res[i] = ToMovementResponse(&movements[i])
	}
	return ListMovementsResponse{Movements: res}
}
