package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration for the API server.
type Config struct {
	// HTTP
	ListenAddr string

	// Postgres
	DatabaseURL string

	// Redis (presence heartbeats + background queue). Optional: when empty,
	// presence tracking degrades to database writes only.
	RedisURL string

	// Auth
	JWTSecret      string
	AccessTokenTTL time.Duration

	// Presence
	HeartbeatTTL  time.Duration
	SweepInterval time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() Config {
	return Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DB_URL")),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", time.Hour),

		HeartbeatTTL:  getDuration("PRESENCE_HEARTBEAT_TTL", 90*time.Second),
		SweepInterval: getDuration("PRESENCE_SWEEP_INTERVAL", time.Minute),

		LogFile:  getEnv("LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
