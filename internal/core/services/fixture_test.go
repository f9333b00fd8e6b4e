package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/services"
)

const (
	testBranch = "branch-pap-01"
	testUser   = "teller-1"
	htgReserve = "reserve-htg"
	usdReserve = "reserve-usd"
	testRateID = "rate-1"
)

var fixedNow = time.Date(2025, 10, 8, 14, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// engine wires real services on top of a memStore with a pinned clock.
type engine struct {
	store     *memStore
	reserves  portssvc.ReserveSvcFacade
	exchanges portssvc.ExchangeSvcFacade
	rates     portssvc.ExchangeRateSvcFacade
	reports   portssvc.ReportingSvc
	branches  portssvc.BranchDirectory
	now       time.Time
}

func (e *engine) clock() time.Time { return e.now }

func newEngine(commission string) *engine {
	store := newMemStore()
	store.addBranch(testBranch, "Port-au-Prince Centre")
	e := &engine{store: store, now: fixedNow}

	locker := services.NewReserveLocker(time.Second)
	branches := services.NewBranchDirectory(store, 16, time.Minute)

	reserveSvc := services.NewReserveService(store, store, store, branches, locker, nil)
	reserveSvc.Clock = e.clock
	exchangeSvc := services.NewExchangeService(services.ExchangeServiceDeps{
		TxManager:      store,
		ReserveRepo:    store,
		MovementRepo:   store,
		ExchangeRepo:   store,
		RateRepo:       store,
		Branches:       branches,
		Locker:         locker,
		CommissionRate: dec(commission),
	})
	exchangeSvc.Clock = e.clock
	rateSvc := services.NewExchangeRateService(store, store)
	rateSvc.Clock = e.clock
	reportSvc := services.NewReportingService(store, store, branches)
	reportSvc.Clock = e.clock

	e.reserves = reserveSvc
	e.exchanges = exchangeSvc
	e.rates = rateSvc
	e.reports = reportSvc
	e.branches = branches
	return e
}

// seedReserves installs an HTG and a USD reserve with the given balances and default limits.
func (e *engine) seedReserves(htg, usd string) {
	h := domain.NewCurrencyReserve(htgReserve, testBranch, "Port-au-Prince Centre", domain.HTG, domain.SystemUserID, fixedNow.Add(-24*time.Hour))
	h.CurrentBalance = dec(htg)
	u := domain.NewCurrencyReserve(usdReserve, testBranch, "Port-au-Prince Centre", domain.USD, domain.SystemUserID, fixedNow.Add(-24*time.Hour))
	u.CurrentBalance = dec(usd)
	e.store.putReserve(h)
	e.store.putReserve(u)
}

// seedRate installs the active HTG/USD rate.
func (e *engine) seedRate(buying, selling string) {
	e.store.putRate(domain.ExchangeRate{
		ExchangeRateID: testRateID,
		BaseCurrency:   domain.HTG,
		TargetCurrency: domain.USD,
		BuyingRate:     dec(buying),
		SellingRate:    dec(selling),
		EffectiveDate:  fixedNow.Add(-48 * time.Hour),
		UpdateMethod:   domain.RateManual,
		IsActive:       true,
	})
}

func (e *engine) balance(reserveID string) decimal.Decimal {
	return e.store.reserve(reserveID).CurrentBalance
}

var bg = context.Background()
