package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for matchbook.
type Config struct {
	LogLevel        string
	MarketRemainder string // "drop" or "reject"
	SummaryDepth    int
}

// Load reads configuration from environment variables, applies
// defaults, and validates values. It returns an error for any
// invalid value.
func Load() (*Config, error) {
	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	marketRemainder := getStr("MARKET_REMAINDER", "drop")
	if marketRemainder != "drop" && marketRemainder != "reject" {
		return nil, fmt.Errorf("invalid MARKET_REMAINDER: %q, must be one of: drop, reject", marketRemainder)
	}

	summaryDepth, err := getInt("SUMMARY_DEPTH", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_DEPTH: %w", err)
	}
	if summaryDepth < 0 {
		return nil, fmt.Errorf("invalid SUMMARY_DEPTH: must be >= 0, got %d", summaryDepth)
	}

	return &Config{
		LogLevel:        logLevel,
		MarketRemainder: marketRemainder,
		SummaryDepth:    summaryDepth,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
