package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// Exchange-rate sync
	RateSourceURL     string
	RateLocalCurrency string
	// RateFallback is the last-known-good dollar rate used when the
	// external source is unreachable.
	RateFallback decimal.Decimal
	// RateSyncSpec is a cron expression; empty disables the sync job.
	RateSyncSpec string

	// RateLimitPerMinute bounds requests per client IP; 0 disables limiting.
	RateLimitPerMinute int

	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_SOURCE_URL", "https://bcv-api.rafnixg.dev/rates/")
	viper.SetDefault("RATE_LOCAL_CURRENCY", "VES")
	viper.SetDefault("RATE_FALLBACK", "35.0")
	viper.SetDefault("RATE_SYNC_SPEC", "0 */4 * * *")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	fallbackStr := viper.GetString("RATE_FALLBACK")
	fallback, err := decimal.NewFromString(fallbackStr)
	if err != nil || fallback.LessThanOrEqual(decimal.Zero) {
		fallback = decimal.NewFromInt(35)
		log.Printf("Warning: Invalid value for RATE_FALLBACK ('%s'). Defaulting to %s.\n", fallbackStr, fallback.String())
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateSourceURL = viper.GetString("RATE_SOURCE_URL")
	cfg.RateLocalCurrency = viper.GetString("RATE_LOCAL_CURRENCY")
	cfg.RateFallback = fallback
	cfg.RateSyncSpec = viper.GetString("RATE_SYNC_SPEC")
	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	if cfg.RateSourceURL == "" {
		log.Println("Warning: RATE_SOURCE_URL not set. Rate sync will always fall back.")
	}

	return cfg, nil
}
