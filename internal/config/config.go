package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the service shell needs to boot.
type Config struct {
	AppPort int

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisHost     string
	RedisPort     int
	RedisPassword string

	CacheTTL     time.Duration
	CachePrefix  string
	AuditEnabled bool
	AuditBuffer  int
}

// LoadConfig reads .env when present and then the process environment.
// Missing values fall back to local-development defaults; a malformed
// numeric value is an error rather than a silent fallback.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:          8080,
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     5432,
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnv("POSTGRES_DB", "authz"),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        6379,
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		CacheTTL:         30 * time.Minute,
		CachePrefix:      getEnv("CACHE_PREFIX", "authz:"),
		AuditEnabled:     getEnv("AUDIT_ENABLED", "true") == "true",
		AuditBuffer:      256,
	}

	var err error
	if cfg.AppPort, err = getEnvInt("APP_PORT", cfg.AppPort); err != nil {
		return nil, err
	}
	if cfg.PostgresPort, err = getEnvInt("POSTGRES_PORT", cfg.PostgresPort); err != nil {
		return nil, err
	}
	if cfg.RedisPort, err = getEnvInt("REDIS_PORT", cfg.RedisPort); err != nil {
		return nil, err
	}
	if cfg.AuditBuffer, err = getEnvInt("AUDIT_BUFFER", cfg.AuditBuffer); err != nil {
		return nil, err
	}

	ttlMinutes, err := getEnvInt("CACHE_TTL_MINUTES", int(cfg.CacheTTL.Minutes()))
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttlMinutes) * time.Minute

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
