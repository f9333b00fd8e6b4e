package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
	"github.com/SscSPs/fx_reserve_ledger/internal/platform/metrics"
)

const (
	transactionPrefix = "EXC"
	receiptPrefix     = "REC"

	defaultListLimit = 20
	maxListLimit     = 200
)

// ExchangeServiceDeps groups the collaborators of the exchange service.
type ExchangeServiceDeps struct {
	TxManager      portsrepo.TransactionManager
	ReserveRepo    portsrepo.ReserveRepositoryFacade
	MovementRepo   portsrepo.MovementRepositoryFacade
	ExchangeRepo   portsrepo.ExchangeTransactionRepositoryFacade
	RateRepo       portsrepo.ExchangeRateReader
	Branches       portssvc.BranchDirectory
	Locker         *ReserveLocker
	Metrics        *metrics.Metrics
	CommissionRate decimal.Decimal
}

// exchangeService executes currency exchanges against branch reserves.
type exchangeService struct {
	BaseService
	ExchangeServiceDeps
	ledger ledgerPoster
}

// NewExchangeService creates a new exchange service.
func NewExchangeService(deps ExchangeServiceDeps) *exchangeService {
	return &exchangeService{
		ExchangeServiceDeps: deps,
		ledger:              ledgerPoster{reserveRepo: deps.ReserveRepo, movementRepo: deps.MovementRepo},
	}
}

var _ portssvc.ExchangeSvcFacade = (*exchangeService)(nil)

// calculate quotes amount in direction against the rate active now.
func (s *exchangeService) calculate(ctx context.Context, direction string, amount decimal.Decimal, commissionOverride *decimal.Decimal, now time.Time) (domain.ExchangeCalculation, error) {
	dir := domain.ExchangeDirection(strings.ToUpper(strings.TrimSpace(direction)))
	if !dir.IsValid() {
		return domain.ExchangeCalculation{}, fmt.Errorf("%w: unknown exchange direction %q", apperrors.ErrValidation, direction)
	}
	if !amount.IsPositive() {
		return domain.ExchangeCalculation{}, fmt.Errorf("%w: exchange amount must be greater than zero", apperrors.ErrInvalidAmount)
	}

	rate, err := s.RateRepo.FindCurrentRate(ctx, domain.HTG, domain.USD, now)
	if err != nil {
		return domain.ExchangeCalculation{}, err
	}

	commission := s.CommissionRate
	if commissionOverride != nil {
		commission = *commissionOverride
	}
	return domain.CalculateExchange(*rate, dir, amount, commission, now)
}

func (s *exchangeService) CalculateExchange(ctx context.Context, branchID string, req dto.CalculateExchangeRequest) (*domain.ExchangeCalculation, error) {
	branchID, err := domain.NormalizeBranchID(branchID)
	if err != nil {
		return nil, err
	}
	calc, err := s.calculate(ctx, req.Direction, req.Amount, req.CommissionRate, s.Now())
	if err != nil {
		return nil, err
	}

	outgoing, err := s.ReserveRepo.FindReserveByBranchAndCurrency(ctx, branchID, calc.ToCurrency)
	switch {
	case errors.Is(err, apperrors.ErrReserveNotFound):
		calc.IsValid = false
		calc.Message = fmt.Sprintf("Branch holds no %s reserve", calc.ToCurrency)
	case err != nil:
		return nil, err
	case !outgoing.IsActive:
		calc.IsValid = false
		calc.Message = fmt.Sprintf("%s reserve is inactive", calc.ToCurrency)
	case outgoing.CurrentBalance.LessThan(calc.NetAmount):
		calc.IsValid = false
		calc.Message = fmt.Sprintf("Insufficient %s reserve: %s available", calc.ToCurrency, outgoing.CurrentBalance.StringFixed(2))
	case outgoing.CheckDailyLimit(calc.NetAmount) != nil:
		calc.IsValid = false
		calc.Message = fmt.Sprintf("Daily %s limit exceeded: %s remaining", calc.ToCurrency, outgoing.DailyRemaining().StringFixed(2))
	}
	return &calc, nil
}

func (s *exchangeService) ProcessExchange(ctx context.Context, branchID string, req dto.CreateExchangeRequest, userID string) (txn *domain.ExchangeTransaction, err error) {
	defer func() { s.Metrics.ObserveExchange(strings.ToUpper(req.Direction), err) }()

	branchID, err = domain.NormalizeBranchID(branchID)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		existing, err := s.ExchangeRepo.FindExchangeTransactionByIdempotencyKey(ctx, branchID, key)
		if err == nil {
			s.LogInfo(ctx, "Idempotent replay of exchange",
				slog.String("transaction_id", existing.TransactionID), slog.String("idempotency_key", key))
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	now := s.Now()
	calc, err := s.calculate(ctx, req.Direction, req.Amount, req.CommissionRate, now)
	if err != nil {
		return nil, err
	}

	incoming, err := s.ReserveRepo.FindReserveByBranchAndCurrency(ctx, branchID, calc.FromCurrency)
	if err != nil {
		return nil, err
	}
	outgoing, err := s.ReserveRepo.FindReserveByBranchAndCurrency(ctx, branchID, calc.ToCurrency)
	if err != nil {
		return nil, err
	}

	lockStart := time.Now()
	unlock, err := s.Locker.Lock(ctx, incoming.ReserveID, outgoing.ReserveID)
	s.Metrics.ObserveLockWait(time.Since(lockStart).Seconds())
	if err != nil {
		return nil, err
	}
	defer unlock()

	branchName := s.Branches.ResolveBranchName(ctx, branchID)
	var created domain.ExchangeTransaction

	err = s.TxManager.WithTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.ReserveRepo.FindReservesForUpdate(ctx, tx, []string{incoming.ReserveID, outgoing.ReserveID})
		if err != nil {
			return err
		}
		in, okIn := locked[incoming.ReserveID]
		out, okOut := locked[outgoing.ReserveID]
		if !okIn || !okOut {
			return fmt.Errorf("%w: branch %s is missing a leg of %s/%s", apperrors.ErrReserveNotFound, branchID, calc.FromCurrency, calc.ToCurrency)
		}
		if !in.IsActive || !out.IsActive {
			return fmt.Errorf("%w: branch %s", apperrors.ErrReserveInactive, branchID)
		}
		if err := out.CheckDailyLimit(calc.NetAmount); err != nil {
			return err
		}

		seq, err := s.ExchangeRepo.NextDailySequenceTx(ctx, tx, branchID, now)
		if err != nil {
			return err
		}
		created = newExchangeTransaction(calc, branchID, branchName, req, key, userID, seq, now)
		if err := s.ExchangeRepo.InsertExchangeTransactionTx(ctx, tx, created); err != nil {
			return err
		}

		description := domain.ExchangeDescription(calc.FromCurrency, calc.ToCurrency)
		if _, err := s.ledger.post(ctx, tx, &out, posting{
			Delta:         calc.NetAmount.Neg(),
			Kind:          domain.MovementExchange,
			Reference:     created.TransactionNumber,
			Description:   description,
			TransactionID: &created.TransactionID,
		}, userID, now); err != nil {
			return err
		}
		if _, err := s.ledger.post(ctx, tx, &in, posting{
			Delta:         calc.FromAmount,
			Kind:          domain.MovementExchange,
			Reference:     created.TransactionNumber,
			Description:   description,
			TransactionID: &created.TransactionID,
		}, userID, now); err != nil {
			return err
		}

		created.Status = domain.ExchangeCompleted
		return s.ExchangeRepo.UpdateExchangeTransactionTx(ctx, tx, created)
	})
	if err != nil {
		if key != "" && errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent request with the same key committed first.
			if existing, findErr := s.ExchangeRepo.FindExchangeTransactionByIdempotencyKey(ctx, branchID, key); findErr == nil {
				return existing, nil
			}
		}
		s.LogError(ctx, err, "Exchange rejected",
			slog.String("branch_id", branchID),
			slog.String("direction", string(calc.Direction)),
			slog.String("amount", calc.FromAmount.StringFixed(2)))
		return nil, err
	}

	s.Metrics.AddPaidOut(string(created.ToCurrency), created.NetAmount.InexactFloat64())
	s.LogInfo(ctx, "Exchange completed",
		slog.String("transaction_id", created.TransactionID),
		slog.String("transaction_number", created.TransactionNumber),
		slog.String("direction", string(created.Direction)),
		slog.String("net_amount", created.NetAmount.StringFixed(2)))
	return &created, nil
}

func newExchangeTransaction(calc domain.ExchangeCalculation, branchID, branchName string, req dto.CreateExchangeRequest, key, userID string, seq int64, now time.Time) domain.ExchangeTransaction {
	txn := domain.ExchangeTransaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: domain.TransactionNumber(transactionPrefix, now, seq),
		BranchID:          branchID,
		BranchName:        branchName,
		ExchangeRateID:    calc.ExchangeRateID,
		Direction:         calc.Direction,
		FromCurrency:      calc.FromCurrency,
		ToCurrency:        calc.ToCurrency,
		FromAmount:        calc.FromAmount,
		ToAmount:          calc.ToAmount,
		AppliedRate:       calc.AppliedRate,
		CommissionRate:    calc.CommissionRate,
		CommissionAmount:  calc.CommissionAmount,
		NetAmount:         calc.NetAmount,
		CustomerName:      req.CustomerName,
		CustomerDocument:  req.CustomerDocument,
		CustomerPhone:     req.CustomerPhone,
		Status:            domain.ExchangePending,
		TransactionDate:   now,
		ProcessedBy:       userID,
		Notes:             req.Notes,
		ReceiptNumber:     domain.TransactionNumber(receiptPrefix, now, seq),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if key != "" {
		txn.IdempotencyKey = &key
	}
	return txn
}

func (s *exchangeService) ReverseExchange(ctx context.Context, transactionID string, reason string, userID string) (txn *domain.ExchangeTransaction, err error) {
	defer func() { s.Metrics.ObserveReversal(err) }()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.ExchangeRepo.FindExchangeTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := original.CanReverse(); err != nil {
		return nil, err
	}
	legs, err := s.MovementRepo.ListMovementsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	reserveIDs := make([]string, 0, len(legs))
	for _, leg := range legs {
		reserveIDs = append(reserveIDs, leg.ReserveID)
	}
	lockStart := time.Now()
	unlock, err := s.Locker.Lock(ctx, reserveIDs...)
	s.Metrics.ObserveLockWait(time.Since(lockStart).Seconds())
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.Now()
	var reversed *domain.ExchangeTransaction

	err = s.TxManager.WithTx(ctx, func(tx pgx.Tx) error {
		current, err := s.ExchangeRepo.FindExchangeTransactionForUpdate(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if err := current.CanReverse(); err != nil {
			return err
		}
		legs, err := s.MovementRepo.ListMovementsByTransactionTx(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		if len(legs) == 0 {
			return fmt.Errorf("%w: transaction %s has no ledger movements", apperrors.ErrConflict, current.TransactionNumber)
		}

		ids := make([]string, 0, len(legs))
		for _, leg := range legs {
			ids = append(ids, leg.ReserveID)
		}
		locked, err := s.ReserveRepo.FindReservesForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}

		for _, leg := range legs {
			reserve, ok := locked[leg.ReserveID]
			if !ok {
				return fmt.Errorf("%w: %s", apperrors.ErrReserveNotFound, leg.ReserveID)
			}
			if !reserve.IsActive {
				return fmt.Errorf("%w: %s reserve of branch %s", apperrors.ErrReserveInactive, reserve.Currency, reserve.BranchID)
			}
			if leg.MovementType == domain.MovementExchange && leg.Amount.IsNegative() && reserve.CountsTowardsCurrentDay(leg.MovementDate) {
				reserve.ReleaseDailyUsage(leg.Amount.Neg())
			}
			if _, err := s.ledger.post(ctx, tx, &reserve, posting{
				Delta:       leg.Amount.Neg(),
				Kind:        domain.MovementAdjustment,
				Reference:   domain.ReversalReference(leg.Reference),
				Description: "Reversal: " + reason,
				Notes:       "Reversal of movement " + leg.MovementID,
			}, userID, now); err != nil {
				return err
			}
			locked[leg.ReserveID] = reserve
		}

		current.MarkReversed(userID, reason, now)
		if err := s.ExchangeRepo.UpdateExchangeTransactionTx(ctx, tx, *current); err != nil {
			return err
		}
		reversed = current
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Reversal rejected", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Exchange reversed",
		slog.String("transaction_id", transactionID),
		slog.String("user_id", userID),
		slog.String("reason", reason))
	return reversed, nil
}

func (s *exchangeService) GetExchangeTransaction(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error) {
	return s.ExchangeRepo.FindExchangeTransactionByID(ctx, transactionID)
}

func (s *exchangeService) ListExchangeTransactions(ctx context.Context, filter domain.ExchangeFilter) ([]domain.ExchangeTransaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}
	return s.ExchangeRepo.ListExchangeTransactions(ctx, filter)
}

func (s *exchangeService) PrintReceipt(ctx context.Context, transactionID string, userID string) (*domain.ExchangeTransaction, string, error) {
	txn, err := s.ExchangeRepo.FindExchangeTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, "", err
	}
	now := s.Now()
	if err := s.ExchangeRepo.MarkReceiptPrinted(ctx, transactionID, userID, now); err != nil {
		return nil, "", err
	}
	txn.ReceiptPrinted = true
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	return txn, txn.Receipt(), nil
}
