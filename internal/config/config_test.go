package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 100*time.Millisecond, cfg.StatTickInterval)
	require.Equal(t, 10*time.Second, cfg.ScoreTickInterval)
	require.Equal(t, 10, cfg.ScoreTickPoints)
	require.Empty(t, cfg.RedisAddr)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("LIFESIM_ADDR", ":9999")
	t.Setenv("LIFESIM_STAT_TICK_INTERVAL", "250ms")
	t.Setenv("LIFESIM_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, 250*time.Millisecond, cfg.StatTickInterval)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("LIFESIM_SCORE_TICK_POINTS", "0")

	_, err := Load()
	require.Error(t, err)
}
