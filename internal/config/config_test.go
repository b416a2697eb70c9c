package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SebastianoFazzino/number-game/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "crypto", cfg.RNGSource)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.RateLimitEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RNG_SOURCE", "fast")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.RateLimitEnabled())
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, "fast", cfg.RNGSource)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown rng source", "RNG_SOURCE", "dice"},
		{"negative rate limit", "RATE_LIMIT_PER_MINUTE", "-1"},
		{"non numeric redis db", "REDIS_DB", "zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
