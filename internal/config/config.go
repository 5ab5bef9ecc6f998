package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; only DATABASE_URL is required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// WhatsApp gateway
	ChatGatewayURL string
	ChatTimeout    time.Duration

	// SMTP relay
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Confirmation form; empty means the built-in default URL.
	FormBaseURL string

	// Delivery worker tuning
	WorkerBatchSize  int
	DispatchInterval time.Duration
	DrainPause       time.Duration
	IdlePause        time.Duration
	FetchRetry       time.Duration

	// RunOnce makes the worker exit cleanly once the queue drains,
	// for cron-style invocations.
	RunOnce bool
}

func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseURL: dbURL,
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 25)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 5)),

		ChatGatewayURL: getEnv("CHAT_GATEWAY_URL", "http://localhost:3000"),
		ChatTimeout:    getDuration("CHAT_TIMEOUT", 30*time.Second),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		FormBaseURL: os.Getenv("FORM_BASE_URL"),

		WorkerBatchSize:  getInt("WORKER_BATCH_SIZE", 5),
		DispatchInterval: getDuration("DISPATCH_INTERVAL", 2*time.Second),
		DrainPause:       getDuration("DRAIN_PAUSE", 5*time.Second),
		IdlePause:        getDuration("IDLE_PAUSE", 60*time.Second),
		FetchRetry:       getDuration("FETCH_RETRY", 10*time.Second),

		RunOnce: getBool("RUN_ONCE", false),
	}, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
