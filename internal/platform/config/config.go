package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/btc_tracker/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	LogLevel      slog.Level
	MigrationsURL string

	MainCurrency domain.Currency

	RateRefreshCron    string
	RateRefreshTimeout time.Duration
	RefreshOnStartup   bool
	RateSourceURL      string
	BTCPriceSourceURL  string

	RateLimit          string
	CORSAllowedOrigins []string
}

// UseDatabase reports whether transactions are stored in Postgres rather than in memory.
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("MAIN_CURRENCY", "EUR")
	v.SetDefault("RATE_REFRESH_CRON", "@every 15m")
	v.SetDefault("RATE_REFRESH_TIMEOUT", "10s")
	v.SetDefault("RATE_REFRESH_ON_STARTUP", true)
	v.SetDefault("RATE_SOURCE_URL", "https://api.frankfurter.app")
	v.SetDefault("BTC_PRICE_SOURCE_URL", "https://api.coingecko.com/api/v3")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		MigrationsURL:     v.GetString("MIGRATIONS_PATH"),
		RateRefreshCron:   strings.TrimSpace(v.GetString("RATE_REFRESH_CRON")),
		RefreshOnStartup:  v.GetBool("RATE_REFRESH_ON_STARTUP"),
		RateSourceURL:     strings.TrimRight(v.GetString("RATE_SOURCE_URL"), "/"),
		BTCPriceSourceURL: strings.TrimRight(v.GetString("BTC_PRICE_SOURCE_URL"), "/"),
		RateLimit:         v.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Transactions are kept in memory.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	mainCurrency, err := domain.ParseCurrency(v.GetString("MAIN_CURRENCY"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIN_CURRENCY: %w", err)
	}
	cfg.MainCurrency = mainCurrency

	timeoutStr := v.GetString("RATE_REFRESH_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
		log.Printf("Warning: Invalid value for RATE_REFRESH_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.RateRefreshTimeout = timeout

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
