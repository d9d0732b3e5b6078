package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("MATCH_CACHE_TTL_DAYS")
	os.Unsetenv("SEARCH_OVERFETCH_MULTIPLIER")
	os.Unsetenv("SEARCH_DAY_NIGHT_THRESHOLD")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "esencia", cfg.Database.Database)
	assert.Equal(t, 7, cfg.Matching.CacheTTLDays)
	assert.Equal(t, 2, cfg.Matching.OverfetchMultiplier)
	assert.Equal(t, 70.0, cfg.Matching.DayNightThreshold)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_MatchingOverrides(t *testing.T) {
	os.Setenv("MATCH_CACHE_TTL_DAYS", "3")
	os.Setenv("SEARCH_OVERFETCH_MULTIPLIER", "4")
	os.Setenv("SEARCH_DAY_NIGHT_THRESHOLD", "55.5")
	defer func() {
		os.Unsetenv("MATCH_CACHE_TTL_DAYS")
		os.Unsetenv("SEARCH_OVERFETCH_MULTIPLIER")
		os.Unsetenv("SEARCH_DAY_NIGHT_THRESHOLD")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 3, cfg.Matching.CacheTTLDays)
	assert.Equal(t, 4, cfg.Matching.OverfetchMultiplier)
	assert.Equal(t, 55.5, cfg.Matching.DayNightThreshold)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Database: "esencia", SSLMode: "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=esencia sslmode=disable",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
