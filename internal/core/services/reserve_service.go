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

// reserveService manages branch reserves and their movement ledger.
type reserveService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	reserveRepo  portsrepo.ReserveRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
	branches     portssvc.BranchDirectory
	locker       *ReserveLocker
	metrics      *metrics.Metrics
	ledger       ledgerPoster
}

// NewReserveService creates a new reserve service.
func NewReserveService(
	txManager portsrepo.TransactionManager,
	reserveRepo portsrepo.ReserveRepositoryFacade,
	movementRepo portsrepo.MovementRepositoryFacade,
	branches portssvc.BranchDirectory,
	locker *ReserveLocker,
	m *metrics.Metrics,
) *reserveService {
	return &reserveService{
		txManager:    txManager,
		reserveRepo:  reserveRepo,
		movementRepo: movementRepo,
		branches:     branches,
		locker:       locker,
		metrics:      m,
		ledger:       ledgerPoster{reserveRepo: reserveRepo, movementRepo: movementRepo},
	}
}

var _ portssvc.ReserveSvcFacade = (*reserveService)(nil)

func (s *reserveService) GetOrCreateReserve(ctx context.Context, branchID string, currency domain.CurrencyCode, userID string) (*domain.CurrencyReserve, error) {
	branchID, err := domain.NormalizeBranchID(branchID)
	if err != nil {
		return nil, err
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, currency)
	}

	reserve, err := s.reserveRepo.FindReserveByBranchAndCurrency(ctx, branchID, currency)
	if err == nil {
		return reserve, nil
	}
	if !errors.Is(err, apperrors.ErrReserveNotFound) {
		return nil, err
	}

	if userID == "" {
		userID = domain.SystemUserID
	}
	name := s.branches.ResolveBranchName(ctx, branchID)
	created := domain.NewCurrencyReserve(uuid.NewString(), branchID, name, currency, userID, s.Now())
	if err := s.reserveRepo.CreateReserveIfAbsent(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to create reserve",
			slog.String("branch_id", branchID), slog.String("currency", string(currency)))
		return nil, fmt.Errorf("failed to create %s reserve for branch %s: %w", currency, branchID, err)
	}
	s.LogInfo(ctx, "Reserve ready",
		slog.String("branch_id", branchID), slog.String("currency", string(currency)))

	// Another request may have won the insert, so always return the stored row.
	return s.reserveRepo.FindReserveByBranchAndCurrency(ctx, branchID, currency)
}

func (s *reserveService) GetReserve(ctx context.Context, reserveID string) (*domain.CurrencyReserve, error) {
	return s.reserveRepo.FindReserveByID(ctx, reserveID)
}

func (s *reserveService) ListBranchReserves(ctx context.Context, branchID string, userID string) ([]domain.CurrencyReserve, error) {
	reserves := make([]domain.CurrencyReserve, 0, len(domain.SupportedCurrencies))
	for _, currency := range domain.SupportedCurrencies {
		reserve, err := s.GetOrCreateReserve(ctx, branchID, currency, userID)
		if err != nil {
			return nil, err
		}
		if reserve.IsActive {
			reserves = append(reserves, *reserve)
		}
	}
	return reserves, nil
}

func (s *reserveService) UpdateLimits(ctx context.Context, reserveID string, req dto.UpdateReserveLimitsRequest, userID string) (*domain.CurrencyReserve, error) {
	if err := domain.ValidateLimits(req.MinimumBalance, req.MaximumBalance, req.DailyLimit); err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, reserveID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	reserve, err := s.reserveRepo.FindReserveByID(ctx, reserveID)
	if err != nil {
		return nil, err
	}
	reserve.MinimumBalance = req.MinimumBalance
	reserve.MaximumBalance = req.MaximumBalance
	reserve.DailyLimit = req.DailyLimit
	if req.Notes != nil {
		reserve.Notes = *req.Notes
	}
	reserve.LastUpdatedAt = s.Now()
	reserve.LastUpdatedBy = userID

	if err := s.reserveRepo.UpdateReserveLimits(ctx, *reserve); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Reserve limits updated", slog.String("reserve_id", reserveID), slog.String("user_id", userID))
	return reserve, nil
}

func (s *reserveService) ResetDailyUsage(ctx context.Context, reserveID string, asOf time.Time, userID string) (*domain.CurrencyReserve, error) {
	now := s.Now()
	if asOf.IsZero() {
		asOf = now
	}

	unlock, err := s.lock(ctx, reserveID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.reserveRepo.ResetDailyUsage(ctx, reserveID, asOf.UTC(), userID, now); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Daily usage reset", slog.String("reserve_id", reserveID), slog.Time("as_of", asOf))
	return s.reserveRepo.FindReserveByID(ctx, reserveID)
}

func (s *reserveService) DeactivateReserve(ctx context.Context, reserveID string, userID string) error {
	unlock, err := s.lock(ctx, reserveID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.reserveRepo.DeactivateReserve(ctx, reserveID, userID, s.Now()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Reserve deactivated", slog.String("reserve_id", reserveID), slog.String("user_id", userID))
	return nil
}

// manualDelta converts a requested amount into the signed balance change of a manual movement.
func manualDelta(kind domain.MovementType, amount decimal.Decimal) (decimal.Decimal, string, error) {
	if err := domain.CheckCents(amount); err != nil {
		return decimal.Zero, "", err
	}
	switch kind {
	case domain.MovementRestock:
		if !amount.IsPositive() {
			return decimal.Zero, "", fmt.Errorf("%w: restock amount must be greater than zero", apperrors.ErrInvalidAmount)
		}
		return amount, "Reserve restock", nil
	case domain.MovementDeposit:
		if !amount.IsPositive() {
			return decimal.Zero, "", fmt.Errorf("%w: deposit amount must be greater than zero", apperrors.ErrInvalidAmount)
		}
		return amount.Neg(), "Deposit to central bank", nil
	case domain.MovementAdjustment:
		if amount.IsZero() {
			return decimal.Zero, "", fmt.Errorf("%w: adjustment amount must not be zero", apperrors.ErrInvalidAmount)
		}
		return amount, "Manual adjustment", nil
	default:
		return decimal.Zero, "", fmt.Errorf("%w: %q cannot be recorded manually", apperrors.ErrUnsupportedMovementType, kind)
	}
}

func (s *reserveService) AddManualMovement(ctx context.Context, req dto.CreateMovementRequest, userID string) (movement *domain.CurrencyMovement, err error) {
	kind := domain.MovementType(strings.ToUpper(strings.TrimSpace(req.MovementType)))
	defer func() { s.metrics.ObserveManualMovement(string(kind), err) }()

	currency, err := domain.ParseCurrencyCode(req.Currency)
	if err != nil {
		return nil, err
	}
	delta, defaultDescription, err := manualDelta(kind, req.Amount)
	if err != nil {
		return nil, err
	}

	reserve, err := s.GetOrCreateReserve(ctx, req.BranchID, currency, userID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, reserve.ReserveID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	description := req.Description
	if description == "" {
		description = defaultDescription
	}
	entry := posting{
		Delta:       delta,
		Kind:        kind,
		Reference:   req.Reference,
		Description: description,
		Notes:       req.Notes,
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		locked, err := s.reserveRepo.FindReservesForUpdate(ctx, tx, []string{reserve.ReserveID})
		if err != nil {
			return err
		}
		current, ok := locked[reserve.ReserveID]
		if !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrReserveNotFound, reserve.ReserveID)
		}
		if !current.IsActive {
			return fmt.Errorf("%w: %s reserve of branch %s", apperrors.ErrReserveInactive, current.Currency, current.BranchID)
		}
		movement, err = s.ledger.post(ctx, tx, &current, entry, userID, s.Now())
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Manual movement rejected",
			slog.String("reserve_id", reserve.ReserveID), slog.String("type", string(kind)))
		return nil, err
	}

	s.LogInfo(ctx, "Manual movement recorded",
		slog.String("reserve_id", reserve.ReserveID),
		slog.String("type", string(kind)),
		slog.String("amount", delta.StringFixed(2)),
		slog.String("balance_after", movement.BalanceAfter.StringFixed(2)))
	return movement, nil
}

func (s *reserveService) ListMovements(ctx context.Context, reserveID string, from, to *time.Time) ([]domain.CurrencyMovement, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}
	if _, err := s.reserveRepo.FindReserveByID(ctx, reserveID); err != nil {
		return nil, err
	}
	return s.movementRepo.ListMovementsByReserve(ctx, reserveID, from, to)
}

func (s *reserveService) VerifyLedger(ctx context.Context, reserveID string) (*domain.LedgerCheck, error) {
	reserve, err := s.reserveRepo.FindReserveByID(ctx, reserveID)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.ListMovementsByReserve(ctx, reserveID, nil, nil)
	if err != nil {
		return nil, err
	}

	replayed := domain.ReplayBalance(movements)
	consistent := replayed.Equal(reserve.CurrentBalance)
	for _, m := range movements {
		if !m.IsConsistent() {
			consistent = false
			break
		}
	}
	if !consistent {
		s.LogError(ctx, errors.New("ledger mismatch"), "Reserve ledger does not replay to stored balance",
			slog.String("reserve_id", reserveID),
			slog.String("stored", reserve.CurrentBalance.StringFixed(2)),
			slog.String("replayed", replayed.StringFixed(2)))
	}
	return &domain.LedgerCheck{
		ReserveID:       reserveID,
		StoredBalance:   reserve.CurrentBalance,
		ReplayedBalance: replayed,
		MovementCount:   len(movements),
		Consistent:      consistent,
	}, nil
}

func (s *reserveService) lock(ctx context.Context, ids ...string) (func(), error) {
	start := time.Now()
	unlock, err := s.locker.Lock(ctx, ids...)
	s.metrics.ObserveLockWait(time.Since(start).Seconds())
	return unlock, err
}
