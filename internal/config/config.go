package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the full application configuration: server settings, the
// currency universe, and exchange-rate provider tuning.
type Config struct {
	Port   string
	DBPath string

	HomeCurrency    string
	Currencies      []string
	ForexCurrencies []string
	Categories      []string

	RateCacheTTL time.Duration
	ProviderURL  string
	FetchTimeout time.Duration
	FetchRetries int
	FetchBackoff time.Duration

	FallbackRates map[string]decimal.Decimal
}

// Load builds the configuration from environment variables, reading a .env
// file first if one is present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("DB_PATH", "data/travelbuddy.sqlite3"),

		HomeCurrency:    getEnv("HOME_CURRENCY", "INR"),
		Currencies:      getEnvList("CURRENCIES", []string{"INR", "SGD", "MYR"}),
		ForexCurrencies: getEnvList("FOREX_CURRENCIES", []string{"SGD", "MYR"}),
		Categories: getEnvList("CATEGORIES", []string{
			"food", "transport", "accommodation", "activities", "shopping", "misc",
		}),

		RateCacheTTL: getEnvDuration("RATE_CACHE_TTL", time.Hour),
		ProviderURL:  getEnv("RATE_PROVIDER_URL", "https://api.exchangerate-api.com/v4/latest"),
		FetchTimeout: getEnvDuration("RATE_FETCH_TIMEOUT", 10*time.Second),
		FetchRetries: getEnvInt("RATE_FETCH_RETRIES", 2),
		FetchBackoff: getEnvDuration("RATE_FETCH_BACKOFF", 500*time.Millisecond),

		FallbackRates: map[string]decimal.Decimal{
			"INR": decimal.NewFromInt(1),
			"SGD": decimal.NewFromInt(62),
			"MYR": decimal.NewFromInt(18),
		},
	}
}

// SupportsCurrency reports whether a currency is part of the configured
// universe.
func (c *Config) SupportsCurrency(currency string) bool {
	return contains(c.Currencies, currency)
}

// SupportsForexCard reports whether a prepaid forex card exists for the
// currency.
func (c *Config) SupportsForexCard(currency string) bool {
	return contains(c.ForexCurrencies, currency)
}

// SupportsCategory reports whether a category is configured.
func (c *Config) SupportsCategory(category string) bool {
	return contains(c.Categories, category)
}

// FallbackRate returns the static home-currency rate used when every other
// rate source is unavailable. Unknown currencies default to 1.
func (c *Config) FallbackRate(currency string) decimal.Decimal {
	if rate, ok := c.FallbackRates[currency]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
