package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port     int
	Env      string
	LogLevel string

	// CORS
	AllowedOrigins []string

	// Session state backend: memory, redis, postgres or sqlite
	StateBackend string
	RedisURL     string
	PostgresURL  string
	SQLitePath   string

	// Lifetimes
	SessionTTL     time.Duration
	ScorecardTTL   time.Duration
	SweepInterval  time.Duration
	SuggestDelay   time.Duration
	DemoStepDelay  time.Duration
	RequestTimeout time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if the selected state backend is missing its connection URL.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnvInt("PORT", 8080),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StateBackend: strings.ToLower(getEnv("STATE_BACKEND", "memory")),
		SQLitePath:   getEnv("SQLITE_PATH", "formats.db"),

		SessionTTL:     getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		ScorecardTTL:   getEnvDuration("SCORECARD_TTL", 6*time.Hour),
		SweepInterval:  getEnvDuration("SWEEP_INTERVAL", time.Minute),
		SuggestDelay:   getEnvDuration("SUGGEST_DEBOUNCE", 200*time.Millisecond),
		DemoStepDelay:  getEnvDuration("DEMO_STEP_DELAY", 2500*time.Millisecond),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Connection URLs are only required by the backend that uses them
	var err error
	switch cfg.StateBackend {
	case "memory", "sqlite":
	case "redis":
		if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
			return nil, err
		}
	case "postgres":
		if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported STATE_BACKEND: %s", cfg.StateBackend)
	}

	return cfg, nil
}

// IsProduction reports whether ENV selects production logging and defaults
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
