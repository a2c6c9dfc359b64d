package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OBRA_API_BASE_URL", "https://api.obracheck.test/")
	t.Setenv("DIRECTORY_CACHE_TTL_SECONDS", "")
	t.Setenv("SYNC_LOG_RETENTION_DAYS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "https://api.obracheck.test", cfg.ObraAPIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.DirectoryCacheTTL)
	assert.Equal(t, 30, cfg.SyncLogRetentionDays)
	assert.Equal(t, "15 3 * * *", cfg.SyncLogPruneSpec)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DIRECTORY_CACHE_TTL_SECONDS", "0")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "obracheck")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.DirectoryCacheTTL)
	assert.Equal(t, 2.5, cfg.RateLimitPerSecond)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.DatabaseEnabled())
}
