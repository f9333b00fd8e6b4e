package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/fx_reserve_ledger/internal/dto"
	"github.com/SscSPs/fx_reserve_ledger/internal/middleware"
	"github.com/SscSPs/fx_reserve_ledger/internal/platform/config"
	"github.com/SscSPs/fx_reserve_ledger/internal/utils"
)

// authHandler issues bearer tokens for local development and testing.
// Production deployments get tokens from the upstream identity provider.
type authHandler struct {
	jwtSecret   string
	jwtIssuer   string
	jwtDuration time.Duration
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{
		jwtSecret:   cfg.JWTSecret,
		jwtIssuer:   cfg.JWTIssuer,
		jwtDuration: cfg.JWTExpiryDuration,
	}
}

// registerAuthRoutes sets up the token route outside production.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	h := newAuthHandler(cfg)

	// 5 tokens per minute per client IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/auth")
	{
		auth.POST("/token", limitergin.NewMiddleware(ipLimiter), h.issueToken)
	}
}

// issueToken godoc
// @Summary Issue a development token
// @Description Signs a bearer token whose subject is the given actor. Not available in production.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.TokenRequest true "Actor"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/token [post]
func (h *authHandler) issueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	signed, err := utils.GenerateJWT(req.UserID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: signed})
}
