package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
)

// --- Mock ReserveService ---
type MockReserveService struct {
	mock.Mock
}

func (m *MockReserveService) GetOrCreateReserve(ctx context.Context, branchID string, currency domain.CurrencyCode, userID string) (*domain.CurrencyReserve, error) {
	args := m.Called(ctx, branchID, currency, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyReserve), args.Error(1)
}
func (m *MockReserveService) GetReserve(ctx context.Context, reserveID string) (*domain.CurrencyReserve, error) {
	args := m.Called(ctx, reserveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyReserve), args.Error(1)
}
func (m *MockReserveService) ListBranchReserves(ctx context.Context, branchID string, userID string) ([]domain.CurrencyReserve, error) {
	args := m.Called(ctx, branchID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyReserve), args.Error(1)
}
func (m *MockReserveService) UpdateLimits(ctx context.Context, reserveID string, req dto.UpdateReserveLimitsRequest, userID string) (*domain.CurrencyReserve, error) {
	args := m.Called(ctx, reserveID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyReserve), args.Error(1)
}
func (m *MockReserveService) ResetDailyUsage(ctx context.Context, reserveID string, asOf time.Time, userID string) (*domain.CurrencyReserve, error) {
	args := m.Called(ctx, reserveID, asOf, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyReserve), args.Error(1)
}
func (m *MockReserveService) DeactivateReserve(ctx context.Context, reserveID string, userID string) error {
	args := m.Called(ctx, reserveID, userID)
	return args.Error(0)
}
func (m *MockReserveService) AddManualMovement(ctx context.Context, req dto.CreateMovementRequest, userID string) (*domain.CurrencyMovement, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyMovement), args.Error(1)
}
func (m *MockReserveService) ListMovements(ctx context.Context, reserveID string, from, to *time.Time) ([]domain.CurrencyMovement, error) {
	args := m.Called(ctx, reserveID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyMovement), args.Error(1)
}
func (m *MockReserveService) VerifyLedger(ctx context.Context, reserveID string) (*domain.LedgerCheck, error) {
	args := m.Called(ctx, reserveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerCheck), args.Error(1)
}

var _ portssvc.ReserveSvcFacade = (*MockReserveService)(nil)

// --- Mock ExchangeService ---
type MockExchangeService struct {
	mock.Mock
}

func (m *MockExchangeService) CalculateExchange(ctx context.Context, branchID string, req dto.CalculateExchangeRequest) (*domain.ExchangeCalculation, error) {
	args := m.Called(ctx, branchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeCalculation), args.Error(1)
}
func (m *MockExchangeService) ProcessExchange(ctx context.Context, branchID string, req dto.CreateExchangeRequest, userID string) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, branchID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}
func (m *MockExchangeService) ReverseExchange(ctx context.Context, transactionID string, reason string, userID string) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, transactionID, reason, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}
func (m *MockExchangeService) GetExchangeTransaction(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}
func (m *MockExchangeService) ListExchangeTransactions(ctx context.Context, filter domain.ExchangeFilter) ([]domain.ExchangeTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeTransaction), args.Error(1)
}
func (m *MockExchangeService) PrintReceipt(ctx context.Context, transactionID string, userID string) (*domain.ExchangeTransaction, string, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.String(1), args.Error(2)
}

var _ portssvc.ExchangeSvcFacade = (*MockExchangeService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetCurrentRate(ctx context.Context, base, target domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, base, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) UpdateExchangeRate(ctx context.Context, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) DeactivateExchangeRate(ctx context.Context, rateID string, userID string) error {
	return m.Called(ctx, rateID, userID).Error(0)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetExchangeSummary(ctx context.Context, branchID string, date time.Time) (*domain.ExchangeSummary, error) {
	args := m.Called(ctx, branchID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeSummary), args.Error(1)
}
func (m *MockReportingService) GetDailyExchangeReport(ctx context.Context, branchID string, date time.Time) (*domain.ExchangeSummary, []domain.ExchangeTransaction, error) {
	args := m.Called(ctx, branchID, date)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ExchangeSummary), args.Get(1).([]domain.ExchangeTransaction), args.Error(2)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock BranchDirectory ---
type MockBranchDirectory struct {
	mock.Mock
}

func (m *MockBranchDirectory) ResolveBranchName(ctx context.Context, branchID string) string {
	return m.Called(ctx, branchID).String(0)
}
func (m *MockBranchDirectory) Invalidate(branchID string) { m.Called(branchID) }
func (m *MockBranchDirectory) Purge()                     { m.Called() }

var _ portssvc.BranchDirectory = (*MockBranchDirectory)(nil)
