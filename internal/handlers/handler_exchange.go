package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
	"github.com/SscSPs/fx_reserve_ledger/internal/middleware"
)

// exchangeHandler handles HTTP requests for currency exchanges
type exchangeHandler struct {
	exchangeService portssvc.ExchangeSvcFacade
}

func newExchangeHandler(es portssvc.ExchangeSvcFacade) *exchangeHandler {
	return &exchangeHandler{exchangeService: es}
}

// registerExchangeRoutes registers routes for quoting, executing and reversing exchanges.
func registerExchangeRoutes(rg *gin.RouterGroup, exchangeService portssvc.ExchangeSvcFacade) {
	h := newExchangeHandler(exchangeService)

	branchExchanges := rg.Group("/branches/:branchID/exchanges")
	{
		branchExchanges.POST("/calculate", h.calculateExchange)
		branchExchanges.POST("", h.processExchange)
	}

	exchanges := rg.Group("/exchanges")
	{
		exchanges.GET("", h.listExchanges)
		exchanges.GET("/:transactionID", h.getExchange)
		exchanges.POST("/:transactionID/reverse", h.reverseExchange)
		exchanges.GET("/:transactionID/receipt", h.printReceipt)
	}
}

// calculateExchange godoc
// @Summary Quote an exchange
// @Description Calculates amounts and commission against the current rate and reports whether the branch reserves can serve it. Nothing is stored.
// @Tags exchanges
// @Accept json
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param exchange body dto.CalculateExchangeRequest true "Exchange to quote"
// @Success 200 {object} domain.ExchangeCalculation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branchID}/exchanges/calculate [post]
func (h *exchangeHandler) calculateExchange(c *gin.Context) {
	var req dto.CalculateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	calc, err := h.exchangeService.CalculateExchange(c.Request.Context(), c.Param("branchID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to calculate exchange")
		return
	}
	c.JSON(http.StatusOK, calc)
}

// processExchange godoc
// @Summary Execute an exchange
// @Description Moves both branch reserves and records both ledger legs atomically. A repeated idempotencyKey returns the original transaction.
// @Tags exchanges
// @Accept json
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param exchange body dto.CreateExchangeRequest true "Exchange to execute"
// @Success 201 {object} dto.ExchangeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branchID}/exchanges [post]
func (h *exchangeHandler) processExchange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.CreateExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.exchangeService.ProcessExchange(c.Request.Context(), c.Param("branchID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to process exchange")
		return
	}

	logger.Info("Exchange processed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_number", txn.TransactionNumber))
	c.JSON(http.StatusCreated, dto.ToExchangeResponse(txn))
}

// listExchanges godoc
// @Summary List exchanges
// @Tags exchanges
// @Produce json
// @Param branchID query string false "Branch ID"
// @Param status query string false "Status" Enums(PENDING, COMPLETED, CANCELLED, FAILED)
// @Param direction query string false "Direction" Enums(PURCHASE, SALE)
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListExchangesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges [get]
func (h *exchangeHandler) listExchanges(c *gin.Context) {
	var params dto.ListExchangesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	txns, err := h.exchangeService.ListExchangeTransactions(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondWithError(c, err, "Failed to list exchanges")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangesResponse(txns, params.Limit, params.Offset))
}

// getExchange godoc
// @Summary Get an exchange
// @Tags exchanges
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges/{transactionID} [get]
func (h *exchangeHandler) getExchange(c *gin.Context) {
	txn, err := h.exchangeService.GetExchangeTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondWithError(c, err, "Failed to get exchange")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeResponse(txn))
}

// reverseExchange godoc
// @Summary Reverse an exchange
// @Description Writes compensating movements for both legs of a completed exchange and cancels it
// @Tags exchanges
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param reversal body dto.ReverseExchangeRequest true "Reversal reason"
// @Success 200 {object} dto.ExchangeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges/{transactionID}/reverse [post]
func (h *exchangeHandler) reverseExchange(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.ReverseExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	txn, err := h.exchangeService.ReverseExchange(c.Request.Context(), c.Param("transactionID"), req.Reason, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reverse exchange")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Exchange reversed",
		slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.ToExchangeResponse(txn))
}

// printReceipt godoc
// @Summary Print a receipt
// @Description Renders the customer receipt of an exchange and marks it printed
// @Tags exchanges
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchanges/{transactionID}/receipt [get]
func (h *exchangeHandler) printReceipt(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	txn, text, err := h.exchangeService.PrintReceipt(c.Request.Context(), c.Param("transactionID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to print receipt")
		return
	}
	c.JSON(http.StatusOK, dto.ReceiptResponse{
		TransactionID: txn.TransactionID,
		ReceiptNumber: txn.ReceiptNumber,
		Text:          text,
	})
}
