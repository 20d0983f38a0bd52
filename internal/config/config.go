package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP server
	ListenAddr      string
	ShutdownTimeout time.Duration

	// Database
	PostgresDSN     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Redis cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ListCacheTTL  time.Duration

	// Identity provider webhooks
	WebhookSecret string
	// Header set by the auth proxy with the provider-verified subject.
	IdentityHeader string

	// Transactional email
	MailEndpoint  string
	MailAccessKey string
	MailTimeout   time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:      getEnvString("LISTEN_ADDR", ":8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),

		// Empty disables redis; the service falls back to its in-process cache.
		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		ListCacheTTL:  getEnvDuration("LIST_CACHE_TTL", 30*time.Second),

		WebhookSecret:  getEnvString("IDENTITY_WEBHOOK_SECRET", ""),
		IdentityHeader: getEnvString("IDENTITY_HEADER", "X-Auth-Subject"),

		MailEndpoint:  getEnvString("MAIL_ENDPOINT", "https://api.web3forms.com/submit"),
		MailAccessKey: getEnvString("MAIL_ACCESS_KEY", ""),
		MailTimeout:   getEnvDuration("MAIL_TIMEOUT", 10*time.Second),

		LogLevel: getEnvString("LOG_LEVEL", "info"),
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres DSN is empty")
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max open conns must be positive: %d", c.MaxOpenConns)
	}

	if c.ListCacheTTL < 0 {
		return fmt.Errorf("list cache TTL must not be negative: %v", c.ListCacheTTL)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
