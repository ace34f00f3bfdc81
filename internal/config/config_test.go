package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("JWT_SECRET", "signing-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, int32(2), cfg.Postgres.MinConns)
	assert.Equal(t, time.Hour, cfg.Postgres.MaxConnLifetime)
	assert.Equal(t, "signing-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "sha256", cfg.Auth.PasswordHash)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("AUTH_PASSWORD_HASH", "bcrypt")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordHash)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_MissingDBHost(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_TOKEN_TTL", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_TOKEN_TTL")
}

func TestLoad_InvalidInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MAX_CONNS", "many")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_CONNS")
}
