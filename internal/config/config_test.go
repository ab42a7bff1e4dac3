package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable the config reads so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_SSLMODE", "DB_MAX_OPEN_CONNS", "SESSION_SECRET", "SESSION_TTL",
		"SESSION_STORE", "STATIC_DIR", "LOG_LEVEL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "registration_db", cfg.DBName)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.True(t, cfg.SessionSecretDefaulted())
	assert.False(t, cfg.SMTPConfigured())
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "prod-secret")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_STORE", "postgres")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, SessionStorePostgres, cfg.SessionStore)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.False(t, cfg.SessionSecretDefaulted())
	assert.True(t, cfg.SMTPConfigured())
}

func TestUnknownSessionStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_STORE", "redis")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestDBConn(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 dbname=registration_db user=postgres password=postgres sslmode=disable",
		cfg.DBConn())
}
