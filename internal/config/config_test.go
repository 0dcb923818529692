package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.FreshFor)
	assert.False(t, cfg.Postgres.Enabled)
	assert.Equal(t, 0.03, cfg.Pricing.RatePerPoint)
	assert.Equal(t, 0.4, cfg.Pricing.PriceWeight)
	assert.Equal(t, 0.3, cfg.Pricing.DurationWeight)
	assert.Equal(t, 0.2, cfg.Pricing.StopsWeight)
	assert.Equal(t, 0.1, cfg.Pricing.AncillaryWeight)
	assert.Equal(t, 2*time.Second, cfg.Sources.SourceTimeout)
	assert.Equal(t, 2, cfg.Sources.MaxRetries)
	assert.Equal(t, 5, cfg.Search.DefaultLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_FRESH_FOR", "10m")
	t.Setenv("RATE_PER_POINT", "0.05")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Cache.FreshFor)
	assert.Equal(t, 0.05, cfg.Pricing.RatePerPoint)
}

func TestLoad_RejectsFreshnessBeyondTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("CACHE_FRESH_FOR", "45m")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_FRESH_FOR")
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", DBName: "travel", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/travel?sslmode=disable", p.DSN())
}
