package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv string
	Port   string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	ObraAPIBaseURL string
	ObraAPITimeout time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret string

	RateLimitPerSecond float64
	RateLimitBurst     int

	// DirectoryCacheTTL only serves the workers listing and report builds;
	// loading a roster always reads the directory from the backend.
	DirectoryCacheTTL time.Duration
	ReportCacheTTL    time.Duration

	OutboxPollInterval   time.Duration
	SyncLogRetentionDays int
	SyncLogPruneSpec     string

	ConnectRetries int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	return Config{
		AppEnv: readString("APP_ENV", "development"),
		Port:   port,

		ReadTimeout:  readDurationSeconds("HTTP_READ_TIMEOUT_SECONDS", 5),
		WriteTimeout: readDurationSeconds("HTTP_WRITE_TIMEOUT_SECONDS", 30),
		IdleTimeout:  readDurationSeconds("HTTP_IDLE_TIMEOUT_SECONDS", 60),

		ObraAPIBaseURL: strings.TrimRight(os.Getenv("OBRA_API_BASE_URL"), "/"),
		ObraAPITimeout: readDurationSeconds("OBRA_API_TIMEOUT_SECONDS", 15),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     readString("DB_PORT", "5432"),
		DBSSLMode:  readString("DB_SSLMODE", "disable"),

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RateLimitPerSecond: readFloat("RATE_LIMIT_PER_SECOND", 10),
		RateLimitBurst:     readInt("RATE_LIMIT_BURST", 20),

		DirectoryCacheTTL: readDurationSeconds("DIRECTORY_CACHE_TTL_SECONDS", 60),
		ReportCacheTTL:    readDurationSeconds("REPORT_CACHE_TTL_SECONDS", 600),

		OutboxPollInterval:   readDurationSeconds("OUTBOX_POLL_INTERVAL_SECONDS", 3),
		SyncLogRetentionDays: readInt("SYNC_LOG_RETENTION_DAYS", 30),
		SyncLogPruneSpec:     readString("SYNC_LOG_PRUNE_CRON", "15 3 * * *"),

		ConnectRetries: readInt("CONNECT_RETRIES", 5),
	}
}

// DatabaseEnabled reports whether enough is configured to open Postgres.
// Without it the gateway still serves rosters but keeps no sync journal.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

func (c Config) IsProduction() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "production" || env == "staging"
}

func readString(key, fallback string) string {
	if raw := os.Getenv(key); raw != "" {
		return raw
	}
	return fallback
}

func readDurationSeconds(key string, fallback int) time.Duration {
	value := readInt(key, fallback)
	if value <= 0 {
		return 0
	}
	return time.Duration(value) * time.Second
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}
