package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "medweg")
	t.Setenv("DB_NAME", "medweg")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "15m0s", cfg.Auth.AccessTokenTTL.String())
	assert.Equal(t, "30m0s", cfg.Worker.StockCheckInterval.String())
}

func TestLoad_MissingDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "medweg")
	t.Setenv("DB_NAME", "medweg")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_AdminSeedRequiresPassword(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_EMAIL", "admin@medweg.de")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ADMIN_PASSWORD", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Administrator", cfg.AdminSeed.Name)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
