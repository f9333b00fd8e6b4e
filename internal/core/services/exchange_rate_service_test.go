package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/core/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	txManager *MockTxManager
	rateRepo  *MockExchangeRateRepository
	service   portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.txManager = new(MockTxManager)
	suite.rateRepo = new(MockExchangeRateRepository)
	svc := services.NewExchangeRateService(suite.txManager, suite.rateRepo)
	svc.Clock = func() time.Time { return fixedNow }
	suite.service = svc
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	req := dto.CreateExchangeRateRequest{
		BaseCurrency:   "htg",
		TargetCurrency: "USD",
		BuyingRate:     dec("131"),
		SellingRate:    dec("134.25"),
		Notes:          "Morning update",
	}
	suite.txManager.On("WithTx", mock.Anything).Return(nil).Once()
	suite.rateRepo.On("DeactivateActiveRatesTx", mock.Anything, mock.Anything, domain.HTG, domain.USD, testUser, fixedNow).Return(nil).Once()
	suite.rateRepo.On("InsertExchangeRateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.IsActive &&
			r.BaseCurrency == domain.HTG &&
			r.UpdateMethod == domain.RateManual &&
			r.EffectiveDate.Equal(fixedNow) &&
			r.SellingRate.Equal(dec("134.25"))
	})).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(bg, req, testUser)
	suite.Require().NoError(err)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal(testUser, rate.CreatedBy)
	suite.rateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Validation() {
	expiry := fixedNow.Add(-time.Hour)
	cases := []struct {
		name string
		req  dto.CreateExchangeRateRequest
	}{
		{"same currency", dto.CreateExchangeRateRequest{BaseCurrency: "USD", TargetCurrency: "USD", BuyingRate: dec("1"), SellingRate: dec("2")}},
		{"unknown currency", dto.CreateExchangeRateRequest{BaseCurrency: "EUR", TargetCurrency: "USD", BuyingRate: dec("1"), SellingRate: dec("2")}},
		{"selling not above buying", dto.CreateExchangeRateRequest{BaseCurrency: "HTG", TargetCurrency: "USD", BuyingRate: dec("132"), SellingRate: dec("132")}},
		{"non-positive buying", dto.CreateExchangeRateRequest{BaseCurrency: "HTG", TargetCurrency: "USD", BuyingRate: dec("0"), SellingRate: dec("132")}},
		{"expiry before effective", dto.CreateExchangeRateRequest{BaseCurrency: "HTG", TargetCurrency: "USD", BuyingRate: dec("130"), SellingRate: dec("132"), ExpiryDate: &expiry}},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, err := suite.service.CreateExchangeRate(bg, tc.req, testUser)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.txManager.AssertNotCalled(suite.T(), "WithTx", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_StorageFailure() {
	storageErr := errors.New("connection reset")
	suite.txManager.On("WithTx", mock.Anything).Return(nil).Once()
	suite.rateRepo.On("DeactivateActiveRatesTx", mock.Anything, mock.Anything, domain.HTG, domain.USD, testUser, fixedNow).Return(storageErr).Once()

	_, err := suite.service.CreateExchangeRate(bg, dto.CreateExchangeRateRequest{
		BaseCurrency: "HTG", TargetCurrency: "USD", BuyingRate: dec("130"), SellingRate: dec("132"),
	}, testUser)
	suite.ErrorIs(err, storageErr)
	suite.rateRepo.AssertNotCalled(suite.T(), "InsertExchangeRateTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate() {
	expected := &domain.ExchangeRate{ExchangeRateID: testRateID, BaseCurrency: domain.HTG, TargetCurrency: domain.USD}
	suite.rateRepo.On("FindCurrentRate", mock.Anything, domain.HTG, domain.USD, fixedNow).Return(expected, nil).Once()

	rate, err := suite.service.GetCurrentRate(bg, domain.HTG, domain.USD)
	suite.Require().NoError(err)
	suite.Equal(testRateID, rate.ExchangeRateID)

	_, err = suite.service.GetCurrentRate(bg, domain.USD, domain.USD)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestDeactivateExchangeRate() {
	suite.rateRepo.On("DeactivateExchangeRate", mock.Anything, testRateID, testUser, fixedNow).Return(nil).Once()
	suite.rateRepo.On("DeactivateExchangeRate", mock.Anything, "missing", testUser, fixedNow).Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.DeactivateExchangeRate(bg, testRateID, testUser))
	suite.ErrorIs(suite.service.DeactivateExchangeRate(bg, "missing", testUser), apperrors.ErrNotFound)
}

func activeRate() *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID: testRateID,
		BaseCurrency:   domain.HTG,
		TargetCurrency: domain.USD,
		BuyingRate:     dec("130"),
		SellingRate:    dec("132.5"),
		EffectiveDate:  fixedNow.Add(-48 * time.Hour),
		UpdateMethod:   domain.RateManual,
		IsActive:       true,
	}
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates() {
	active := true
	filter := domain.ExchangeRateFilter{BaseCurrency: domain.HTG, IsActive: &active, Limit: 20}
	suite.rateRepo.On("ListExchangeRates", mock.Anything, filter).Return([]domain.ExchangeRate{*activeRate()}, nil).Once()

	rates, err := suite.service.ListExchangeRates(bg, filter)
	suite.Require().NoError(err)
	suite.Require().Len(rates, 1)
	suite.Equal(testRateID, rates[0].ExchangeRateID)

	empty := domain.ExchangeRateFilter{TargetCurrency: domain.USD}
	suite.rateRepo.On("ListExchangeRates", mock.Anything, empty).Return(nil, nil).Once()
	rates, err = suite.service.ListExchangeRates(bg, empty)
	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_Validation() {
	from := fixedNow
	to := fixedNow.Add(-24 * time.Hour)

	_, err := suite.service.ListExchangeRates(bg, domain.ExchangeRateFilter{BaseCurrency: "EUR"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ListExchangeRates(bg, domain.ExchangeRateFilter{EffectiveFrom: &from, EffectiveTo: &to})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.rateRepo.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_Success() {
	expiry := fixedNow.Add(72 * time.Hour)
	suite.txManager.On("WithTx", mock.Anything).Return(nil).Once()
	suite.rateRepo.On("FindExchangeRateForUpdate", mock.Anything, mock.Anything, testRateID).Return(activeRate(), nil).Once()
	suite.rateRepo.On("UpdateExchangeRateTx", mock.Anything, mock.Anything, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.ExchangeRateID == testRateID &&
			r.BuyingRate.Equal(dec("131")) &&
			r.SellingRate.Equal(dec("133.75")) &&
			r.ExpiryDate != nil && r.ExpiryDate.Equal(expiry) &&
			r.Notes == "Afternoon correction" &&
			r.LastUpdatedBy == testUser &&
			r.LastUpdatedAt.Equal(fixedNow) &&
			r.EffectiveDate.Equal(fixedNow.Add(-48*time.Hour))
	})).Return(nil).Once()

	rate, err := suite.service.UpdateExchangeRate(bg, testRateID, dto.UpdateExchangeRateRequest{
		BuyingRate:  dec("131"),
		SellingRate: dec("133.75"),
		ExpiryDate:  &expiry,
		Notes:       "Afternoon correction",
	}, testUser)
	suite.Require().NoError(err)
	suite.True(dec("133.75").Equal(rate.SellingRate))
	suite.rateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_SpreadMustBePositive() {
	for _, req := range []dto.UpdateExchangeRateRequest{
		{BuyingRate: dec("132"), SellingRate: dec("132")},
		{BuyingRate: dec("133"), SellingRate: dec("132")},
		{BuyingRate: dec("0"), SellingRate: dec("132")},
	} {
		_, err := suite.service.UpdateExchangeRate(bg, testRateID, req, testUser)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.txManager.AssertNotCalled(suite.T(), "WithTx", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_Rejections() {
	inactive := activeRate()
	inactive.IsActive = false
	past := fixedNow.Add(-72 * time.Hour)

	suite.txManager.On("WithTx", mock.Anything).Return(nil)
	suite.rateRepo.On("FindExchangeRateForUpdate", mock.Anything, mock.Anything, "inactive").Return(inactive, nil).Once()
	suite.rateRepo.On("FindExchangeRateForUpdate", mock.Anything, mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.rateRepo.On("FindExchangeRateForUpdate", mock.Anything, mock.Anything, testRateID).Return(activeRate(), nil).Once()

	req := dto.UpdateExchangeRateRequest{BuyingRate: dec("131"), SellingRate: dec("134")}
	_, err := suite.service.UpdateExchangeRate(bg, "inactive", req, testUser)
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.service.UpdateExchangeRate(bg, "missing", req, testUser)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	req.ExpiryDate = &past
	_, err = suite.service.UpdateExchangeRate(bg, testRateID, req, testUser)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.rateRepo.AssertNotCalled(suite.T(), "UpdateExchangeRateTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestExchangeRateCorrection_AppliesToNextExchange(t *testing.T) {
	e := newEngine("0.02")
	e.seedRate("130", "132.5")
	e.seedReserves("100000", "1000")

	_, err := e.rates.UpdateExchangeRate(bg, testRateID, dto.UpdateExchangeRateRequest{
		BuyingRate: dec("130"), SellingRate: dec("134"),
	}, testUser)
	require.NoError(t, err)

	txn, err := e.exchanges.ProcessExchange(bg, testBranch, saleOf("100"), testUser)
	require.NoError(t, err)
	assert.True(t, dec("134").Equal(txn.AppliedRate))
	assert.True(t, dec("13400").Equal(txn.ToAmount))

	_, err = e.rates.CreateExchangeRate(bg, dto.CreateExchangeRateRequest{
		BaseCurrency: "HTG", TargetCurrency: "USD", BuyingRate: dec("131"), SellingRate: dec("135"),
	}, testUser)
	require.NoError(t, err)

	inactive := false
	history, err := e.rates.ListExchangeRates(bg, domain.ExchangeRateFilter{IsActive: &inactive})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, testRateID, history[0].ExchangeRateID)

	_, err = e.rates.UpdateExchangeRate(bg, testRateID, dto.UpdateExchangeRateRequest{
		BuyingRate: dec("130"), SellingRate: dec("136"),
	}, testUser)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	all, err := e.rates.ListExchangeRates(bg, domain.ExchangeRateFilter{BaseCurrency: domain.HTG, TargetCurrency: domain.USD})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, all[0].IsActive, "newest effective rate is listed first")
}
