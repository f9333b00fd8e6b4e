package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
)

// MockBranchReader is a mock type for the BranchReader interface
type MockBranchReader struct {
	mock.Mock
}

func (m *MockBranchReader) FindBranchName(ctx context.Context, branchID string) (string, error) {
	args := m.Called(ctx, branchID)
	return args.String(0), args.Error(1)
}

// MockTxManager runs fn directly unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

// MockExchangeRateRepository is a mock type for the ExchangeRateRepositoryFacade interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindCurrentRate(ctx context.Context, base, target domain.CurrencyCode, at time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, base, target, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateForUpdate(ctx context.Context, tx pgx.Tx, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, tx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpdateExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error {
	args := m.Called(ctx, tx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeactivateActiveRatesTx(ctx context.Context, tx pgx.Tx, base, target domain.CurrencyCode, userID string, now time.Time) error {
	args := m.Called(ctx, tx, base, target, userID, now)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) InsertExchangeRateTx(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) error {
	args := m.Called(ctx, tx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, rateID string, userID string, now time.Time) error {
	args := m.Called(ctx, rateID, userID, now)
	return args.Error(0)
}

// MockExchangeReader is a mock type for the ExchangeTransactionReader interface
type MockExchangeReader struct {
	mock.Mock
}

func (m *MockExchangeReader) FindExchangeTransactionByID(ctx context.Context, transactionID string) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}

func (m *MockExchangeReader) FindExchangeTransactionByIdempotencyKey(ctx context.Context, branchID, key string) (*domain.ExchangeTransaction, error) {
	args := m.Called(ctx, branchID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTransaction), args.Error(1)
}

func (m *MockExchangeReader) ListExchangeTransactions(ctx context.Context, filter domain.ExchangeFilter) ([]domain.ExchangeTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeTransaction), args.Error(1)
}
