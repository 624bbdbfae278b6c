package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "CATALOG_DIR", "SESSION_STORE", "SESSION_TTL", "NGROK_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "localhost", s.Host)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, "catalogs", s.CatalogDir)
	assert.Equal(t, StoreFile, s.Store)
	assert.Equal(t, 24*time.Hour, s.SessionTTL)
	assert.False(t, s.NgrokEnabled)
}

func TestLoadSettings_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("SESSION_STORE", "sqlite")
	t.Setenv("SESSIONS_DB", "/tmp/cc.db")
	t.Setenv("SESSION_SYNC_INTERVAL", "5s")
	t.Setenv("NGROK_ENABLED", "true")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, 9191, s.Port)
	assert.Equal(t, StoreSQLite, s.Store)
	assert.Equal(t, "/tmp/cc.db", s.DBPath)
	assert.Equal(t, 5*time.Second, s.SyncInterval)
	assert.True(t, s.NgrokEnabled)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "soon")
		_, err := LoadSettings()
		assert.Error(t, err)
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("SESSION_STORE", "redis")
		_, err := LoadSettings()
		assert.ErrorContains(t, err, "unknown session store")
	})
}
