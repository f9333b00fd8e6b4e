package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: rs, now: time.Now}
}

// registerReportingRoutes registers the branch report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/branches/:branchID/reports")
	{
		reports.GET("/summary", h.getExchangeSummary)
		reports.GET("/daily", h.getDailyExchangeReport)
	}
}

// reportDate resolves the optional date query parameter, defaulting to today (UTC).
func (h *reportingHandler) reportDate(c *gin.Context) (time.Time, bool) {
	var params dto.ReportDateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return time.Time{}, false
	}
	if params.Date == "" {
		return h.now().UTC(), true
	}
	date, err := time.Parse(time.DateOnly, params.Date)
	if err != nil {
		respondWithError(c, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, params.Date), "Invalid date")
		return time.Time{}, false
	}
	return date, true
}

// getExchangeSummary godoc
// @Summary Daily exchange summary
// @Description Totals a branch's completed exchanges of a day with its reserve balances and daily limit utilisation
// @Tags reports
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.ExchangeSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branchID}/reports/summary [get]
func (h *reportingHandler) getExchangeSummary(c *gin.Context) {
	date, ok := h.reportDate(c)
	if !ok {
		return
	}
	summary, err := h.reportingService.GetExchangeSummary(c.Request.Context(), c.Param("branchID"), date)
	if err != nil {
		respondWithError(c, err, "Failed to build exchange summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getDailyExchangeReport godoc
// @Summary Daily exchange report
// @Description Lists every exchange of a branch for a day together with the day's summary
// @Tags reports
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param date query string false "Business day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DailyExchangeReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /branches/{branchID}/reports/daily [get]
func (h *reportingHandler) getDailyExchangeReport(c *gin.Context) {
	date, ok := h.reportDate(c)
	if !ok {
		return
	}
	summary, txns, err := h.reportingService.GetDailyExchangeReport(c.Request.Context(), c.Param("branchID"), date)
	if err != nil {
		respondWithError(c, err, "Failed to build daily exchange report")
		return
	}
	c.JSON(http.StatusOK, dto.DailyExchangeReportResponse{
		Summary:   *summary,
		Exchanges: dto.ToListExchangesResponse(txns, len(txns), 0).Exchanges,
	})
}
