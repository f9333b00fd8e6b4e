package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
)

// exchangeRateService provides business logic for exchange rates.
type exchangeRateService struct {
	BaseService
	txManager portsrepo.TransactionManager
	rateRepo  portsrepo.ExchangeRateRepositoryFacade
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(txManager portsrepo.TransactionManager, rateRepo portsrepo.ExchangeRateRepositoryFacade) *exchangeRateService {
	return &exchangeRateService{txManager: txManager, rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) GetCurrentRate(ctx context.Context, base, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	if !base.IsValid() || !target.IsValid() || base == target {
		return nil, fmt.Errorf("%w: invalid currency pair %s/%s", apperrors.ErrValidation, base, target)
	}
	return s.rateRepo.FindCurrentRate(ctx, base, target, s.Now())
}

// ListExchangeRates searches the rate history, newest effective date first.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	if filter.BaseCurrency != "" && !filter.BaseCurrency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, filter.BaseCurrency)
	}
	if filter.TargetCurrency != "" && !filter.TargetCurrency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, filter.TargetCurrency)
	}
	if filter.EffectiveFrom != nil && filter.EffectiveTo != nil && filter.EffectiveTo.Before(*filter.EffectiveFrom) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}
	rates, err := s.rateRepo.ListExchangeRates(ctx, filter)
	if err != nil {
		return nil, err
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, nil
}

func (s *exchangeRateService) GetExchangeRate(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindExchangeRateByID(ctx, rateID)
}

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	base, err := domain.ParseCurrencyCode(req.BaseCurrency)
	if err != nil {
		return nil, err
	}
	target, err := domain.ParseCurrencyCode(req.TargetCurrency)
	if err != nil {
		return nil, err
	}
	if base == target {
		return nil, fmt.Errorf("%w: base and target currency cannot be the same", apperrors.ErrValidation)
	}
	if err := domain.ValidateRateSpread(req.BuyingRate, req.SellingRate); err != nil {
		return nil, err
	}

	now := s.Now()
	effective := now
	if req.EffectiveDate != nil {
		effective = req.EffectiveDate.UTC()
	}
	if req.ExpiryDate != nil && !req.ExpiryDate.After(effective) {
		return nil, fmt.Errorf("%w: expiry date must be after effective date", apperrors.ErrValidation)
	}
	method := domain.RateManual
	if req.UpdateMethod != "" {
		method = domain.RateUpdateMethod(req.UpdateMethod)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		BaseCurrency:   base,
		TargetCurrency: target,
		BuyingRate:     req.BuyingRate,
		SellingRate:    req.SellingRate,
		EffectiveDate:  effective,
		ExpiryDate:     req.ExpiryDate,
		UpdateMethod:   method,
		IsActive:       true,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.rateRepo.DeactivateActiveRatesTx(ctx, tx, base, target, userID, now); err != nil {
			return err
		}
		return s.rateRepo.InsertExchangeRateTx(ctx, tx, rate)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to publish exchange rate",
			slog.String("base", string(base)), slog.String("target", string(target)))
		return nil, err
	}

	s.LogInfo(ctx, "Exchange rate published",
		slog.String("rate_id", rate.ExchangeRateID),
		slog.String("buying", rate.BuyingRate.String()),
		slog.String("selling", rate.SellingRate.String()))
	return &rate, nil
}

func (s *exchangeRateService) DeactivateExchangeRate(ctx context.Context, rateID string, userID string) error {
	if err := s.rateRepo.DeactivateExchangeRate(ctx, rateID, userID, s.Now()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Exchange rate deactivated", slog.String("rate_id", rateID), slog.String("user_id", userID))
	return nil
}

// UpdateExchangeRate corrects the rates, expiry and notes of an active rate in place.
// The pair and effective date are fixed; publishing a new rate is the way to change them.
func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	if err := domain.ValidateRateSpread(req.BuyingRate, req.SellingRate); err != nil {
		return nil, err
	}

	now := s.Now()
	var updated *domain.ExchangeRate
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		rate, err := s.rateRepo.FindExchangeRateForUpdate(ctx, tx, rateID)
		if err != nil {
			return err
		}
		if !rate.IsActive {
			return fmt.Errorf("%w: exchange rate %s is inactive", apperrors.ErrConflict, rateID)
		}
		if req.ExpiryDate != nil && !req.ExpiryDate.After(rate.EffectiveDate) {
			return fmt.Errorf("%w: expiry date must be after effective date", apperrors.ErrValidation)
		}

		rate.BuyingRate = req.BuyingRate
		rate.SellingRate = req.SellingRate
		rate.ExpiryDate = req.ExpiryDate
		rate.Notes = req.Notes
		rate.LastUpdatedAt = now
		rate.LastUpdatedBy = userID
		if err := s.rateRepo.UpdateExchangeRateTx(ctx, tx, *rate); err != nil {
			return err
		}
		updated = rate
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update exchange rate", slog.String("rate_id", rateID))
		return nil, err
	}

	s.LogInfo(ctx, "Exchange rate updated",
		slog.String("rate_id", rateID),
		slog.String("buying", updated.BuyingRate.String()),
		slog.String("selling", updated.SellingRate.String()))
	return updated, nil
}
