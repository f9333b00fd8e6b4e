package services

import (
	portsrepo "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/platform/config"
	"github.com/SscSPs/fx_reserve_ledger/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The branch directory and the locker are shared so every service sees the same cache and critical sections.
	branches := NewBranchDirectory(repos.BranchRepo, cfg.BranchCacheSize, cfg.BranchCacheTTL)
	locker := NewReserveLocker(cfg.ReserveLockTimeout)

	container.Branches = branches
	container.Reserve = NewReserveService(
		repos.TxManager,
		repos.ReserveRepo,
		repos.MovementRepo,
		branches,
		locker,
		m,
	)
	container.Exchange = NewExchangeService(ExchangeServiceDeps{
		TxManager:      repos.TxManager,
		ReserveRepo:    repos.ReserveRepo,
		MovementRepo:   repos.MovementRepo,
		ExchangeRepo:   repos.ExchangeRepo,
		RateRepo:       repos.RateRepo,
		Branches:       branches,
		Locker:         locker,
		Metrics:        m,
		CommissionRate: cfg.CommissionRate,
	})
	container.ExchangeRate = NewExchangeRateService(repos.TxManager, repos.RateRepo)
	container.Reporting = NewReportingService(repos.ReserveRepo, repos.ExchangeRepo, branches)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ReserveSvcFacade      = (*reserveService)(nil)
	_ portssvc.ExchangeSvcFacade     = (*exchangeService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
)
