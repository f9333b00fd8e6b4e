package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("EXCHANGE_COMMISSION_RATE", "")
	t.Setenv("RESERVE_LOCK_TIMEOUT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.005").Equal(cfg.CommissionRate))
	assert.Equal(t, 5*time.Second, cfg.ReserveLockTimeout)
	assert.Equal(t, "fx-reserve-ledger", cfg.JWTIssuer)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("EXCHANGE_COMMISSION_RATE", "0.02")
	t.Setenv("RESERVE_LOCK_TIMEOUT", "250ms")
	t.Setenv("BRANCH_CACHE_TTL", "1m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("IS_PRODUCTION", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.02").Equal(cfg.CommissionRate))
	assert.Equal(t, 250*time.Millisecond, cfg.ReserveLockTimeout)
	assert.Equal(t, time.Minute, cfg.BranchCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction)
}

func TestLoadConfig_InvalidCommissionFallsBack(t *testing.T) {
	t.Setenv("EXCHANGE_COMMISSION_RATE", "1.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.005").Equal(cfg.CommissionRate))
}
