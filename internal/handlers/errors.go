package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/fx_reserve_ledger/internal/apperrors"
	"github.com/SscSPs/fx_reserve_ledger/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// busyRetryAfterSeconds is sent with 503 responses when a reserve is locked.
const busyRetryAfterSeconds = 1

// statusFor maps an error kind to the HTTP status returned to callers.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidConfiguration),
		errors.Is(err, apperrors.ErrUnsupportedMovementType),
		errors.Is(err, apperrors.ErrInvalidRate):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrReserveNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrAlreadyReversed),
		errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrDailyLimitExceeded),
		errors.Is(err, apperrors.ErrReserveInactive):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrBusy):
		return http.StatusServiceUnavailable
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondWithError writes the error response for err and logs it at a level matching the status.
func respondWithError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(busyRetryAfterSeconds))
	}
	logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// actingUser reads the authenticated user or aborts with 401.
func actingUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
