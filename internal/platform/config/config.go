package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// BaseCurrency is the pivot currency all conversions route through.
	// Changing it rescales every stored and converted amount, so the default
	// must stay GHS.
	BaseCurrency string
	// RatesTTL is the freshness window for the cached rate table.
	RatesTTL time.Duration
	// RatesProviderURL is the live exchange-rate feed; empty disables it and
	// the service runs on the built-in static table.
	RatesProviderURL     string
	RatesProviderTimeout time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "famvault-backend")
	viper.SetDefault("BASE_CURRENCY", "GHS")
	viper.SetDefault("RATES_TTL", "1h")
	viper.SetDefault("RATES_PROVIDER_URL", "")
	viper.SetDefault("RATES_PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = "GHS"
	}

	ratesTTLStr := viper.GetString("RATES_TTL")
	ratesTTL, err := time.ParseDuration(ratesTTLStr)
	if err != nil || ratesTTL <= 0 {
		ratesTTL = time.Hour
		log.Printf("Warning: Invalid value for RATES_TTL ('%s'). Defaulting to %s.\n", ratesTTLStr, ratesTTL)
	}
	cfg.RatesTTL = ratesTTL

	cfg.RatesProviderURL = viper.GetString("RATES_PROVIDER_URL")

	providerTimeoutStr := viper.GetString("RATES_PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil || providerTimeout <= 0 {
		providerTimeout = 10 * time.Second
	}
	cfg.RatesProviderTimeout = providerTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
