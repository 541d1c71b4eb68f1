package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Storage backend selectors.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// RateLimitConfig controls the Redis token bucket applied to auth endpoints.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	StorageBackend    string
	DBDSN             string
	RedisAddr         string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int
	UploadDir         string
	LogLevel          string
	LogFormat         string
	RateLimit         RateLimitConfig
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origins (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodString

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Storage backend: postgres (default) or memory for local runs.
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", BackendPostgres)
	if cfg.StorageBackend != BackendPostgres && cfg.StorageBackend != BackendMemory {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	// Database DSN is required for the postgres backend.
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.StorageBackend == BackendPostgres && cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Redis is optional; without it the rate limiter is disabled.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Access token TTL, parsed as time.Duration (e.g. "15m", "24h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Directory for uploaded court photos.
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	// Rate limiting (effective only when REDIS_ADDR is set)
	cfg.RateLimit.Enabled = getEnv("RATE_LIMIT_ENABLED", "true") == "true"
	cfg.RateLimit.Capacity, err = getEnvAsInt("RATE_LIMIT_CAPACITY", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CAPACITY: %w", err)
	}
	cfg.RateLimit.RefillTokens, err = getEnvAsInt("RATE_LIMIT_REFILL_TOKENS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_TOKENS: %w", err)
	}
	refillStr := getEnv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	cfg.RateLimit.RefillInterval, err = time.ParseDuration(refillStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_INTERVAL: %w", err)
	}
	ttlLimStr := getEnv("RATE_LIMIT_TTL", "5m")
	cfg.RateLimit.TTL, err = time.ParseDuration(ttlLimStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_TTL: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set and an error if
// the variable is set but not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
