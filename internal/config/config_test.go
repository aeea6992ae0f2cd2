package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
		assert.Equal(t, 10, cfg.RateLimit.Capacity)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.False(t, cfg.ValidateEmailDomain)
		assert.Equal(t, 7*24*time.Hour, cfg.StatsSnapshotTTL)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("SHOP_TIMEZONE", "Europe/Berlin")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("CORS_ALLOW_ORIGINS", "https://amai.example,https://admin.amai.example")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Addr())
		assert.Equal(t, "Europe/Berlin", cfg.ShopTimezone)
		assert.Equal(t, "cache:6379", cfg.Redis.Addr)
		assert.Equal(t, []string{"https://amai.example", "https://admin.amai.example"}, cfg.CORS.AllowOrigins)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("JWT_TTL", "forever")

		_, err := Load()
		assert.Error(t, err)
	})
}
