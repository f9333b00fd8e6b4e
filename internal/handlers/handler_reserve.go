package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
	"github.com/SscSPs/fx_reserve_ledger/internal/middleware"
)

// reserveHandler handles HTTP requests for branch reserves and their ledger.
type reserveHandler struct {
	reserveService portssvc.ReserveSvcFacade
}

func newReserveHandler(rs portssvc.ReserveSvcFacade) *reserveHandler {
	return &reserveHandler{reserveService: rs}
}

// registerReserveRoutes registers reserve, statement and manual movement routes.
func registerReserveRoutes(rg *gin.RouterGroup, reserveService portssvc.ReserveSvcFacade) {
	h := newReserveHandler(reserveService)

	branches := rg.Group("/branches/:branchID/reserves")
	{
		branches.GET("", h.listBranchReserves)
		branches.GET("/:currency", h.getBranchReserve)
	}

	reserves := rg.Group("/reserves/:reserveID")
	{
		reserves.GET("", h.getReserve)
		reserves.PUT("/limits", h.updateLimits)
		reserves.POST("/daily-usage/reset", h.resetDailyUsage)
		reserves.POST("/deactivate", h.deactivateReserve)
		reserves.GET("/movements", h.listMovements)
		reserves.GET("/ledger-check", h.verifyLedger)
	}

	rg.POST("/movements", h.addManualMovement)
}

// listBranchReserves godoc
// @Summary List branch reserves
// @Description Returns the active HTG and USD reserves of a branch, creating missing ones with default limits
// @Tags reserves
// @Produce json
// @Param branchID path string true "Branch ID"
// @Success 200 {object} dto.ListReservesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branchID}/reserves [get]
func (h *reserveHandler) listBranchReserves(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	reserves, err := h.reserveService.ListBranchReserves(c.Request.Context(), c.Param("branchID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list branch reserves")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReservesResponse(reserves))
}

// getBranchReserve godoc
// @Summary Get a branch reserve by currency
// @Tags reserves
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param currency path string true "Currency code (HTG or USD)"
// @Success 200 {object} dto.ReserveResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branchID}/reserves/{currency} [get]
func (h *reserveHandler) getBranchReserve(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	currency, err := domain.ParseCurrencyCode(c.Param("currency"))
	if err != nil {
		respondWithError(c, err, "Invalid currency")
		return
	}
	reserve, err := h.reserveService.GetOrCreateReserve(c.Request.Context(), c.Param("branchID"), currency, userID)
	if err != nil {
		respondWithError(c, err, "Failed to get reserve")
		return
	}
	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}

// getReserve godoc
// @Summary Get a reserve
// @Tags reserves
// @Produce json
// @Param reserveID path string true "Reserve ID"
// @Success 200 {object} dto.ReserveResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{reserveID} [get]
func (h *reserveHandler) getReserve(c *gin.Context) {
	reserve, err := h.reserveService.GetReserve(c.Request.Context(), c.Param("reserveID"))
	if err != nil {
		respondWithError(c, err, "Failed to get reserve")
		return
	}
	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}

// updateLimits godoc
// @Summary Update reserve limits
// @Description Sets minimum, maximum and daily outgoing limits of a reserve
// @Tags reserves
// @Accept json
// @Produce json
// @Param reserveID path string true "Reserve ID"
// @Param limits body dto.UpdateReserveLimitsRequest true "New limits"
// @Success 200 {object} dto.ReserveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{reserveID}/limits [put]
func (h *reserveHandler) updateLimits(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.UpdateReserveLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	reserve, err := h.reserveService.UpdateLimits(c.Request.Context(), c.Param("reserveID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update reserve limits")
		return
	}
	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}

// resetDailyUsage godoc
// @Summary Reset daily usage
// @Description Zeroes the outgoing volume counted against the daily limit. Intended for a business-day scheduler.
// @Tags reserves
// @Accept json
// @Produce json
// @Param reserveID path string true "Reserve ID"
// @Param reset body dto.ResetDailyUsageRequest false "Reset point, defaults to now"
// @Success 200 {object} dto.ReserveResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{reserveID}/daily-usage/reset [post]
func (h *reserveHandler) resetDailyUsage(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.ResetDailyUsageRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	var asOf time.Time
	if req.AsOf != nil {
		asOf = *req.AsOf
	}
	reserve, err := h.reserveService.ResetDailyUsage(c.Request.Context(), c.Param("reserveID"), asOf, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reset daily usage")
		return
	}
	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}

// deactivateReserve godoc
// @Summary Deactivate a reserve
// @Tags reserves
// @Param reserveID path string true "Reserve ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{reserveID}/deactivate [post]
func (h *reserveHandler) deactivateReserve(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.reserveService.DeactivateReserve(c.Request.Context(), c.Param("reserveID"), userID); err != nil {
		respondWithError(c, err, "Failed to deactivate reserve")
		return
	}
	c.Status(http.StatusNoContent)
}

// listMovements godoc
// @Summary Reserve statement
// @Description Lists the movements of a reserve, newest first
// @Tags movements
// @Produce json
// @Param reserveID path string true "Reserve ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{reserveID}/movements [get]
func (h *reserveHandler) listMovements(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	from, to := params.Range()
	movements, err := h.reserveService.ListMovements(c.Request.Context(), c.Param("reserveID"), from, to)
	if err != nil {
		respondWithError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(movements))
}

// verifyLedger godoc
// @Summary Verify a reserve ledger
// @Description Replays every movement of the reserve and compares the result with the stored balance
// @Tags movements
// @Produce json
// @Param reserveID path string true "Reserve ID"
// @Success 200 {object} dto.LedgerCheckResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reserves/{reserveID}/ledger-check [get]
func (h *reserveHandler) verifyLedger(c *gin.Context) {
	check, err := h.reserveService.VerifyLedger(c.Request.Context(), c.Param("reserveID"))
	if err != nil {
		respondWithError(c, err, "Failed to verify ledger")
		return
	}
	c.JSON(http.StatusOK, check)
}

// addManualMovement godoc
// @Summary Record a manual movement
// @Description Records a restock, a deposit to the central bank or a signed adjustment
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.CreateMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /movements [post]
func (h *reserveHandler) addManualMovement(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	movement, err := h.reserveService.AddManualMovement(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record movement")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Manual movement recorded",
		slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}
