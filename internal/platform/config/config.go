package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Exchange engine
	CommissionRate     decimal.Decimal
	ReserveLockTimeout time.Duration
	DBLockTimeout      time.Duration

	// Branch directory cache
	BranchCacheTTL  time.Duration
	BranchCacheSize int

	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
	MigrationsPath     string
}

const (
	defaultJWTSecret      = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer      = "fx-reserve-ledger"
	defaultCommissionRate = "0.005"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("EXCHANGE_COMMISSION_RATE", defaultCommissionRate)
	v.SetDefault("RESERVE_LOCK_TIMEOUT", "5s")
	v.SetDefault("DB_LOCK_TIMEOUT", "3s")
	v.SetDefault("BRANCH_CACHE_TTL", "10m")
	v.SetDefault("BRANCH_CACHE_SIZE", 512)
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)

	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	commissionStr := v.GetString("EXCHANGE_COMMISSION_RATE")
	commission, err := decimal.NewFromString(commissionStr)
	if err != nil || commission.IsNegative() || commission.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		commission = decimal.RequireFromString(defaultCommissionRate)
		log.Printf("Warning: Invalid value for EXCHANGE_COMMISSION_RATE ('%s'). Defaulting to %s.\n", commissionStr, commission.String())
	}
	cfg.CommissionRate = commission

	cfg.ReserveLockTimeout = durationOrDefault(v, "RESERVE_LOCK_TIMEOUT", 5*time.Second)
	cfg.DBLockTimeout = durationOrDefault(v, "DB_LOCK_TIMEOUT", 3*time.Second)
	cfg.BranchCacheTTL = durationOrDefault(v, "BRANCH_CACHE_TTL", 10*time.Minute)

	cfg.BranchCacheSize = v.GetInt("BRANCH_CACHE_SIZE")
	if cfg.BranchCacheSize <= 0 {
		cfg.BranchCacheSize = 512
		log.Printf("Warning: Invalid value for BRANCH_CACHE_SIZE. Defaulting to %d.\n", cfg.BranchCacheSize)
	}

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
