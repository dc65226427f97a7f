package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"wbreports/internal/domain"

	"github.com/joho/godotenv"
)

const TokenEnv = "WB_TOKEN"

// Application settings
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	API     APIConfig
	Reports ReportsConfig
	Metrics MetricsConfig
}

// Server settings
type ServerConfig struct {
	Port string
}

// Statistics API settings
type APIConfig struct {
	Token              string
	AuthScheme         string
	StatisticsURL      string
	AdvertURL          string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
}

type ReportsConfig struct {
	Dir string
}

type MetricsConfig struct {
	PushgatewayURL string
}

// Logging settings
type LoggingConfig struct {
	Level string
}

// Load reads settings from the environment, after loading a .env file from
// the working directory when one exists. Variables already set win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		API: APIConfig{
			Token:              getEnv(TokenEnv, ""),
			AuthScheme:         getEnv("WB_AUTH_SCHEME", ""),
			StatisticsURL:      getEnv("WB_STATISTICS_URL", "https://statistics-api.wildberries.ru"),
			AdvertURL:          getEnv("WB_ADVERT_URL", "https://advert-api.wildberries.ru"),
			RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", "60s"),
			RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 60),
		},
		Reports: ReportsConfig{
			Dir: getEnv("REPORTS_DIR", "reports"),
		},
		Metrics: MetricsConfig{
			PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

// Validate fails when the API token is missing
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return &domain.MissingCredentialError{Name: TokenEnv}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
