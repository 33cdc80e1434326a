package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Provider
	Platform           string
	CoinGeckoBaseURL   string
	HTTPTimeoutSeconds int

	// Lookup behavior
	DefaultHistoryDate string

	// Notifications
	WebhookURL string
	BotName    string

	// API (serve mode)
	APIPort         int
	CORSAllowOrigin string

	// Logging
	LogLevel string

	// Lookup history persistence (optional)
	HistoryEnabled bool
	DBHost         string
	DBPort         int
	DBName         string
	DBUser         string
	DBPassword     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Provider
		Platform:           envStr("PLATFORM", "solana"),
		CoinGeckoBaseURL:   envStr("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		HTTPTimeoutSeconds: envInt("HTTP_TIMEOUT_SECONDS", 15),

		// Lookup behavior
		DefaultHistoryDate: envStr("DEFAULT_HISTORY_DATE", "2023-01-01 00:00:00"),

		// Notifications
		WebhookURL: envStr("WEBHOOK_URL", ""),
		BotName:    envStr("BOT_NAME", "AthScan"),

		// API
		APIPort:         envInt("API_PORT", 3001),
		CORSAllowOrigin: envStr("CORS_ALLOW_ORIGIN", "*"),

		// Logging
		LogLevel: envStr("LOG_LEVEL", "info"),

		// Persistence
		HistoryEnabled: envBool("HISTORY_ENABLED", false),
		DBHost:         envStr("DB_HOST", "localhost"),
		DBPort:         envInt("DB_PORT", 5432),
		DBName:         envStr("DB_NAME", "athscan"),
		DBUser:         envStr("DB_USER", ""),
		DBPassword:     envStr("DB_PASSWORD", ""),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Platform == "" {
		errs = append(errs, "PLATFORM must not be empty")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		errs = append(errs, "HTTP_TIMEOUT_SECONDS must be positive")
	}
	if c.HistoryEnabled && c.DBUser == "" {
		errs = append(errs, "DB_USER is required when HISTORY_ENABLED=true")
	}
	if c.WebhookURL == "" {
		fmt.Println("[WARN] WEBHOOK_URL not set — lookup notifications disabled")
	}
	if !c.HistoryEnabled {
		fmt.Println("[WARN] HISTORY_ENABLED=false — lookups will not be persisted")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (c *Config) Print() {
	fmt.Println("=== AthScan Token ATH Checker Configuration ===")
	fmt.Printf("Platform: %s\n", c.Platform)
	fmt.Printf("Provider: %s\n", c.CoinGeckoBaseURL)
	fmt.Printf("HTTP Timeout: %ds\n", c.HTTPTimeoutSeconds)
	fmt.Printf("Default History Date: %s\n", c.DefaultHistoryDate)
	fmt.Println("--------------------------------------")
	fmt.Printf("Webhook: %s\n", boolLabel(c.WebhookURL != "", "configured", "not set"))
	fmt.Printf("Lookup History: %s\n", boolLabel(c.HistoryEnabled, "enabled", "disabled"))
	if c.HistoryEnabled {
		fmt.Printf("Database: %s:%d/%s\n", c.DBHost, c.DBPort, c.DBName)
	}
	fmt.Println("======================================")
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "true" || v == "1" || v == "yes"
	}
	return fallback
}

func boolLabel(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
