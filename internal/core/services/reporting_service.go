package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
)

// reportingService builds read-only branch rollups.
type reportingService struct {
	BaseService
	reserveRepo  portsrepo.ReserveReader
	exchangeRepo portsrepo.ExchangeTransactionReader
	branches     portssvc.BranchDirectory
}

// NewReportingService creates a new reporting service.
func NewReportingService(reserveRepo portsrepo.ReserveReader, exchangeRepo portsrepo.ExchangeTransactionReader, branches portssvc.BranchDirectory) *reportingService {
	return &reportingService{reserveRepo: reserveRepo, exchangeRepo: exchangeRepo, branches: branches}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) GetExchangeSummary(ctx context.Context, branchID string, date time.Time) (*domain.ExchangeSummary, error) {
	summary, _, err := s.loadDay(ctx, branchID, date, domain.ExchangeCompleted)
	return summary, err
}

func (s *reportingService) GetDailyExchangeReport(ctx context.Context, branchID string, date time.Time) (*domain.ExchangeSummary, []domain.ExchangeTransaction, error) {
	return s.loadDay(ctx, branchID, date, "")
}

// loadDay reads the day's transactions, the branch reserves and the branch name concurrently.
func (s *reportingService) loadDay(ctx context.Context, branchID string, date time.Time, status domain.ExchangeStatus) (*domain.ExchangeSummary, []domain.ExchangeTransaction, error) {
	branchID, err := domain.NormalizeBranchID(branchID)
	if err != nil {
		return nil, nil, err
	}
	if date.IsZero() {
		date = s.Now()
	}
	start, end := domain.DayBounds(date)

	var (
		txns       []domain.ExchangeTransaction
		reserves   []domain.CurrencyReserve
		branchName string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.exchangeRepo.ListExchangeTransactions(gctx, domain.ExchangeFilter{
			BranchID: branchID,
			Status:   status,
			From:     &start,
			To:       &end,
		})
		return err
	})
	g.Go(func() error {
		var err error
		reserves, err = s.reserveRepo.ListReservesByBranch(gctx, branchID)
		return err
	})
	g.Go(func() error {
		branchName = s.branches.ResolveBranchName(gctx, branchID)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load daily exchange data")
		return nil, nil, err
	}

	summary := &domain.ExchangeSummary{
		BranchID:   branchID,
		BranchName: branchName,
		ReportDate: start,
	}
	for _, t := range txns {
		summary.Accumulate(t)
	}
	for _, r := range reserves {
		summary.ApplyReserve(r)
	}
	if txns == nil {
		txns = []domain.ExchangeTransaction{}
	}
	return summary, txns, nil
}
