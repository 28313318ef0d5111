package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/filmfriend")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ServerAddr)
	require.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	require.Empty(t, cfg.RedisAddr)
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/filmfriend")
	t.Setenv("PORT", ":9000")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.ServerAddr)
	require.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
}
