package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "*", cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.UseJokers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GANDALF_LISTEN_ADDR", ":9090")
	t.Setenv("GANDALF_REDIS_ADDR", "localhost:6379")
	t.Setenv("GANDALF_USE_JOKERS", "true")
	t.Setenv("GANDALF_BOT_TURN_DELAY_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.UseJokers)
	assert.Equal(t, 250, cfg.BotTurnDelayMs)
}
