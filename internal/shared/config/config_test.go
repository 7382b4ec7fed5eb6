package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("OUTBOX_POLL_INTERVAL", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("CONNECT_MAX_RETRIES", "nope")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, 5, cfg.MaxRetries)
}
