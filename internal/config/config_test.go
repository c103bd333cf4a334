package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_CLIENT_ID", "id")
	t.Setenv("DISCORD_CLIENT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 10*time.Minute, cfg.SignupTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 1000, cfg.BoardWidth)
	assert.Equal(t, 1000, cfg.BoardHeight)
	assert.Len(t, cfg.BoardPalette, 16)
	assert.True(t, cfg.Discord.Configured())
	assert.False(t, cfg.Google.Configured())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("BOARD_PALETTE", "#000000, #FFFFFF")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, cfg.BoardPalette)
}

func TestLoadRequiresProvider(t *testing.T) {
	for _, key := range []string{
		"DISCORD_CLIENT_ID", "DISCORD_CLIENT_SECRET",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
		"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET",
	} {
		t.Setenv(key, "")
	}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth provider")
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("DISCORD_CLIENT_ID", "id")
	t.Setenv("DISCORD_CLIENT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadDimensions(t *testing.T) {
	t.Setenv("BOARD_WIDTH", "0")
	t.Setenv("DISCORD_CLIENT_ID", "id")
	t.Setenv("DISCORD_CLIENT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}
