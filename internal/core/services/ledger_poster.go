package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
)

// posting describes one signed change to a reserve.
type posting struct {
	Delta         decimal.Decimal
	Kind          domain.MovementType
	Reference     string
	Description   string
	Notes         string
	TransactionID *string
}

// ledgerPoster applies postings to locked reserves. Every balance change goes
// through post so the reserve row and its movement are written together.
type ledgerPoster struct {
	reserveRepo  portsrepo.ReserveTransactionSupport
	movementRepo portsrepo.MovementWriter
}

// post mutates reserve in place, persists it and appends the matching movement.
// The caller must hold the reserve's row lock in tx.
func (p ledgerPoster) post(ctx context.Context, tx pgx.Tx, reserve *domain.CurrencyReserve, e posting, userID string, now time.Time) (*domain.CurrencyMovement, error) {
	before, after, err := reserve.ApplyDelta(e.Delta, e.Kind, userID, now)
	if err != nil {
		return nil, err
	}
	if err := p.reserveRepo.UpdateReserveBalanceTx(ctx, tx, *reserve); err != nil {
		return nil, fmt.Errorf("failed to update balance of reserve %s: %w", reserve.ReserveID, err)
	}

	movement := domain.CurrencyMovement{
		MovementID:            uuid.NewString(),
		ReserveID:             reserve.ReserveID,
		Currency:              reserve.Currency,
		MovementType:          e.Kind,
		Amount:                e.Delta,
		BalanceBefore:         before,
		BalanceAfter:          after,
		Reference:             e.Reference,
		ExchangeTransactionID: e.TransactionID,
		Description:           e.Description,
		Notes:                 e.Notes,
		MovementDate:          now,
		ProcessedBy:           userID,
		CreatedAt:             now,
	}
	if err := p.movementRepo.InsertMovementTx(ctx, tx, movement); err != nil {
		return nil, fmt.Errorf("failed to record movement on reserve %s: %w", reserve.ReserveID, err)
	}
	return &movement, nil
}
