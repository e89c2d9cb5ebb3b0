package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"-"`
	DBName     string `env:"DB_NAME" envDefault:"advisor"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MarketBaseURL        string `env:"MARKET_BASE_URL" envDefault:""`
	MarketRequestTimeout int    `env:"MARKET_REQUEST_TIMEOUT" envDefault:"10"` // seconds
	MarketRateLimit      int    `env:"MARKET_RATE_LIMIT" envDefault:"5"`       // requests per second

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:"-"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.Port = getEnvIntWithDefault("PORT", 8080)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "advisor")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.MarketBaseURL = os.Getenv("MARKET_BASE_URL")
	cfg.MarketRequestTimeout = getEnvIntWithDefault("MARKET_REQUEST_TIMEOUT", 10)
	cfg.MarketRateLimit = getEnvIntWithDefault("MARKET_RATE_LIMIT", 5)

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	return &cfg, nil
}

// getEnvWithDefault retrieves a string environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntWithDefault retrieves an integer environment variable with a default value
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
