package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port      string
	Env       string
	APIPrefix string

	// CORS configuration
	CORSOrigin string

	// Database configuration
	DB DBConfig

	// Redis configuration
	RedisURL      string
	RedisPassword string

	// JWT configuration
	JWTSecret     string
	JWTExpiration time.Duration

	// AI service configuration
	AI AIConfig
}

// DBConfig holds the relational store configuration
type DBConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Database       string
	PoolMin        int32
	PoolMax        int32
	IdleTimeout    time.Duration
	ConnectTimeout time.Duration
}

// URL builds a postgres connection URL from the individual pieces
func (d DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?connect_timeout=%d",
		d.User, d.Password, d.Host, d.Port, d.Database,
		int(d.ConnectTimeout.Seconds()),
	)
}

// AIConfig holds the outbound AI service configuration
type AIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Load loads configuration from environment variables.
// A .env file in the working directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", "3000"),
		Env:        getEnv("ENV", "development"),
		APIPrefix:  getEnv("API_PREFIX", "/api"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		DB: DBConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "saverfox"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_DATABASE", "saverfox"),
			PoolMin:        int32(getEnvAsInt("DB_POOL_MIN", 2)),
			PoolMax:        int32(getEnvAsInt("DB_POOL_MAX", 10)),
			IdleTimeout:    getEnvAsDuration("DB_IDLE_TIMEOUT", 30*time.Minute),
			ConnectTimeout: getEnvAsDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		},
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: getEnvAsDuration("JWT_EXPIRATION", 24*time.Hour),
		AI: AIConfig{
			BaseURL:    getEnv("AI_SERVICE_URL", "http://localhost:8000"),
			Timeout:    getEnvAsDuration("AI_SERVICE_TIMEOUT", 30*time.Second),
			MaxRetries: getEnvAsInt("AI_SERVICE_MAX_RETRIES", 3),
			RetryDelay: getEnvAsDuration("AI_SERVICE_RETRY_DELAY", time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.DB.PoolMin > c.DB.PoolMax {
		return fmt.Errorf("DB_POOL_MIN cannot exceed DB_POOL_MAX")
	}

	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("AI_SERVICE_MAX_RETRIES cannot be negative")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration with a default value.
// Accepts Go duration strings ("30s") and bare integers interpreted as seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
