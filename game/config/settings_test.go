package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "CONFIG_DIR", "DEFAULT_CONFIG", "LOG_LEVEL", "DEBUG", "GAME_SEED", "SESSION_TTL", "API_BASE_URL", "NGROK_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "localhost", s.Host)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, "configs", s.ConfigDir)
	assert.Equal(t, "classic", s.DefaultConfig)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 24*time.Hour, s.SessionTTL)
	assert.False(t, s.NgrokEnabled)

	_, seeded := s.Seeded()
	assert.False(t, seeded)
}

func TestLoadSettings_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CONFIG_DIR", "/srv/configs")
	t.Setenv("DEBUG", "true")
	t.Setenv("GAME_SEED", "42")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("NGROK_ENABLED", "1")
	t.Setenv("NGROK_DOMAIN", "heads.example.dev")

	s, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 9090, s.Port)
	assert.Equal(t, "/srv/configs", s.ConfigDir)
	assert.True(t, s.Debug)
	assert.Equal(t, 90*time.Minute, s.SessionTTL)
	assert.True(t, s.NgrokEnabled)
	assert.Equal(t, "heads.example.dev", s.NgrokDomain)

	seed, seeded := s.Seeded()
	assert.True(t, seeded)
	assert.Equal(t, uint64(42), seed)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Run("unparsable port", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := LoadSettings()
		assert.ErrorContains(t, err, "parse env")
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("PORT", "70000")
		_, err := LoadSettings()
		assert.ErrorContains(t, err, "port out of range")
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "0s")
		_, err := LoadSettings()
		assert.ErrorContains(t, err, "session ttl")
	})
}
