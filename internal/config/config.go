package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	PasswordHash string // "sha256" or "bcrypt"
}

type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Auth     AuthConfig
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Database credentials and the JWT secret have no sane defaults
// and are required.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = getEnv("APP_PORT", "8080")

	var err error
	if cfg.Postgres.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Postgres.Port, err = requireEnv("DB_PORT"); err != nil {
		return nil, err
	}
	if cfg.Postgres.User, err = requireEnv("DB_USER"); err != nil {
		return nil, err
	}
	if cfg.Postgres.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Postgres.DBName, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	cfg.Postgres.MaxConns = int32(maxConns)

	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	cfg.Postgres.MinConns = int32(minConns)

	cfg.Postgres.MaxConnLifetime, err = getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour)
	if err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	cfg.Auth.TokenTTL, err = getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.Auth.PasswordHash = getEnv("AUTH_PASSWORD_HASH", "sha256")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
