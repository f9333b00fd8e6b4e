package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
)

// exchangeRateHandler handles HTTP requests related to exchange rates
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/current", h.getCurrentRate)
		rates.GET("/:rateID", h.getExchangeRate)
		rates.PUT("/:rateID", h.updateExchangeRate)
		rates.POST("/:rateID/deactivate", h.deactivateExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Publish an exchange rate
// @Description Publishes a new rate for a currency pair and deactivates the pair's previous rates
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param exchangeRate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create exchange rate")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary Search exchange rates
// @Description Lists published rates, newest effective date first. The 'to' date is inclusive.
// @Tags exchange-rates
// @Produce json
// @Param base query string false "Base currency"
// @Param target query string false "Target currency"
// @Param isActive query bool false "Only active or only inactive rates"
// @Param from query string false "Effective from (YYYY-MM-DD)"
// @Param to query string false "Effective to (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondWithError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(rates, params.Limit, params.Offset))
}

// updateExchangeRate godoc
// @Summary Update an active exchange rate
// @Description Corrects buying/selling rates, expiry and notes of an active rate
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rateID path string true "Exchange Rate ID"
// @Param exchangeRate body dto.UpdateExchangeRateRequest true "Corrected values"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rate, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), c.Param("rateID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getCurrentRate godoc
// @Summary Get the current exchange rate
// @Description Returns the active, unexpired rate with the latest effective date for a pair
// @Tags exchange-rates
// @Produce json
// @Param base query string false "Base currency" default(HTG)
// @Param target query string false "Target currency" default(USD)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/current [get]
func (h *exchangeRateHandler) getCurrentRate(c *gin.Context) {
	var params dto.CurrentRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	base, err := domain.ParseCurrencyCode(params.Base)
	if err != nil {
		respondWithError(c, err, "Invalid base currency")
		return
	}
	target, err := domain.ParseCurrencyCode(params.Target)
	if err != nil {
		respondWithError(c, err, "Invalid target currency")
		return
	}

	rate, err := h.exchangeRateService.GetCurrentRate(c.Request.Context(), base, target)
	if err != nil {
		respondWithError(c, err, "Failed to get current exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get an exchange rate by ID
// @Tags exchange-rates
// @Produce json
// @Param rateID path string true "Exchange Rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), c.Param("rateID"))
	if err != nil {
		respondWithError(c, err, "Failed to get exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deactivateExchangeRate godoc
// @Summary Deactivate an exchange rate
// @Tags exchange-rates
// @Param rateID path string true "Exchange Rate ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rateID}/deactivate [post]
func (h *exchangeRateHandler) deactivateExchangeRate(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.exchangeRateService.DeactivateExchangeRate(c.Request.Context(), c.Param("rateID"), userID); err != nil {
		respondWithError(c, err, "Failed to deactivate exchange rate")
		return
	}
	c.Status(http.StatusNoContent)
}
