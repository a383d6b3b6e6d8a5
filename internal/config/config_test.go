package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_USER", "quiz")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "quiz")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ADMIN_JWT_SECRET", "jwt-secret")
}

func TestLoadPlaintextPasscodeOnly(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_PASSCODE", "farewell2026")
	t.Setenv("ADMIN_PASSCODE_HASH", "")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "farewell2026", cfg.Admin.Passcode)
	assert.Empty(t, cfg.Admin.PasscodeHash)
}

func TestLoadHashedPasscodeOnly(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_PASSCODE", "")
	t.Setenv("ADMIN_PASSCODE_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cfg.Admin.Passcode)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", cfg.Admin.PasscodeHash)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_PASSCODE", "farewell2026")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "farewell-quiz", cfg.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr)
	assert.Equal(t, "data/participants.json", cfg.Fallback.Path)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 2*time.Hour, cfg.Admin.TokenTTL)
}

func TestLoadRejectsMissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_JWT_SECRET", "")

	_, err := Load(context.Background())
	assert.Error(t, err)
}
