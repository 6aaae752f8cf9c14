package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Data source modes
const (
	SourceReal = "real"
	SourceMock = "mock"
)

// Config holds all application configuration
type Config struct {
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"` // console or json
	HTTPAddr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	DataSource       string        `env:"DATA_SOURCE" envDefault:"real"`
	Symbol           string        `env:"SYMBOL" envDefault:"^NSEI"`
	GiftNiftySymbols []string      `env:"GIFT_NIFTY_SYMBOLS" envDefault:"^NSEI,NIFTY.SI,NIFTY.SG"`
	GoldSymbol       string        `env:"GOLD_SYMBOL" envDefault:"GC=F"`
	CrudeSymbol      string        `env:"CRUDE_SYMBOL" envDefault:"CL=F"`
	YahooBaseURL     string        `env:"YAHOO_BASE_URL" envDefault:"https://query1.finance.yahoo.com"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"4s"`
	RequestsPerSec   int           `env:"REQUESTS_PER_SEC" envDefault:"5"`
	LevelLookback    int           `env:"LEVEL_LOOKBACK" envDefault:"5"`
	NearThreshold    float64       `env:"LEVEL_NEAR_THRESHOLD" envDefault:"0.02"`
	MetricsEnabled   bool          `env:"METRICS_ENABLED" envDefault:"true"`
	MockSeed         int64         `env:"MOCK_SEED" envDefault:"0"` // 0 seeds from the clock
	TelegramToken    string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64         `env:"TELEGRAM_CHAT_ID"`
	SetupCron        string        `env:"SETUP_CRON" envDefault:"0 30 8 * * 1-5"`
	Timezone         string        `env:"TIMEZONE" envDefault:"Asia/Kolkata"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvWithDefault("LOG_FORMAT", "console")
	cfg.HTTPAddr = getEnvWithDefault("HTTP_ADDR", ":8080")
	cfg.DataSource = strings.ToLower(getEnvWithDefault("DATA_SOURCE", SourceReal))
	cfg.Symbol = getEnvWithDefault("SYMBOL", "^NSEI")
	cfg.GiftNiftySymbols = getEnvListWithDefault("GIFT_NIFTY_SYMBOLS", []string{"^NSEI", "NIFTY.SI", "NIFTY.SG"})
	cfg.GoldSymbol = getEnvWithDefault("GOLD_SYMBOL", "GC=F")
	cfg.CrudeSymbol = getEnvWithDefault("CRUDE_SYMBOL", "CL=F")
	cfg.YahooBaseURL = getEnvWithDefault("YAHOO_BASE_URL", "https://query1.finance.yahoo.com")
	cfg.RequestTimeout = getEnvDurationWithDefault("REQUEST_TIMEOUT", 4*time.Second)
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.LevelLookback = getEnvIntWithDefault("LEVEL_LOOKBACK", 5)
	cfg.NearThreshold = getEnvFloatWithDefault("LEVEL_NEAR_THRESHOLD", 0.02)
	cfg.MetricsEnabled = getEnvBoolWithDefault("METRICS_ENABLED", true)
	cfg.MockSeed = int64(getEnvIntWithDefault("MOCK_SEED", 0))
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = int64(getEnvIntWithDefault("TELEGRAM_CHAT_ID", 0))
	cfg.SetupCron = getEnvWithDefault("SETUP_CRON", "0 30 8 * * 1-5")
	cfg.Timezone = getEnvWithDefault("TIMEZONE", "Asia/Kolkata")

	if cfg.DataSource != SourceMock {
		cfg.DataSource = SourceReal
	}
	if cfg.LevelLookback < 1 {
		cfg.LevelLookback = 5
	}
	if cfg.RequestsPerSec < 1 {
		cfg.RequestsPerSec = 1
	}

	return &cfg, nil
}

// Validate checks value ranges that cannot be repaired silently
func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.NearThreshold <= 0 || c.NearThreshold >= 1 {
		return fmt.Errorf("LEVEL_NEAR_THRESHOLD must be in (0,1), got %g", c.NearThreshold)
	}
	if len(c.GiftNiftySymbols) == 0 {
		return errors.New("GIFT_NIFTY_SYMBOLS must not be empty")
	}
	if c.Symbol == "" {
		return errors.New("SYMBOL must not be empty")
	}
	return nil
}

// ValidateTelegram checks the keys needed to broadcast setups
func (c *Config) ValidateTelegram() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required")
	}
	return nil
}

// UseMock reports whether market data must be generated instead of fetched
func (c *Config) UseMock() bool {
	return c.DataSource == SourceMock
}

// Location resolves the configured timezone, falling back to IST
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("unknown timezone, using IST offset")
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// bare numbers are seconds
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
