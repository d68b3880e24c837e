package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("EMPLOYEE_CODE_PREFIX", "")
	t.Setenv("JWT_ACCESS_TTL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "RGL", cfg.EmployeeCodePrefix)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, int64(2<<20), cfg.Media.MaxImageBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("CONNECT_RETRIES", "nope")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS)
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.OutboxPollInterval)
	assert.Equal(t, 10, cfg.Retries)
}
