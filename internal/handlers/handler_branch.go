package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/fx_reserve_ledger/internal/core/ports/services"
	"github.com/SscSPs/fx_reserve_ledger/internal/middleware"
)

type branchHandler struct {
	branches portssvc.BranchDirectory
}

func registerBranchRoutes(rg *gin.RouterGroup, branches portssvc.BranchDirectory) {
	h := &branchHandler{branches: branches}
	rg.POST("/branches/:branchID/cache/invalidate", h.invalidateBranch)
}

// invalidateBranch godoc
// @Summary Invalidate a cached branch name
// @Description Drops the cached display name so the next lookup reads the branch directory again
// @Tags branches
// @Param branchID path string true "Branch ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /branches/{branchID}/cache/invalidate [post]
func (h *branchHandler) invalidateBranch(c *gin.Context) {
	branchID := c.Param("branchID")
	h.branches.Invalidate(branchID)
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Branch name cache invalidated", slog.String("branch_id", branchID))
	c.Status(http.StatusNoContent)
}
