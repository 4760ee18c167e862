package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 15*time.Second, cfg.App.RequestTimeout)
	assert.Equal(t, "UTC", cfg.DB.TimeZone)
	assert.Equal(t, time.UTC, cfg.DB.Location)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 30, cfg.Stats.DefaultWindowDays)
	assert.Equal(t, 5, cfg.Stats.TopServicesLimit)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\n" +
		"APP_REQUEST_TIMEOUT=3s\n" +
		"DB_HOST=db.internal\n" +
		"DB_AUTO_MIGRATE=true\n" +
		"JWT_SECRET=s3cret\n" +
		"STATS_DEFAULT_WINDOW_DAYS=7\n" +
		"STATS_TOP_SERVICES_LIMIT=3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 3*time.Second, cfg.App.RequestTimeout)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 7, cfg.Stats.DefaultWindowDays)
	assert.Equal(t, 3, cfg.Stats.TopServicesLimit)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\n"), 0o600))
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.App.Port)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_REQUEST_TIMEOUT", "soon")
	t.Setenv("STATS_DEFAULT_WINDOW_DAYS", "-4")
	t.Setenv("STATS_TOP_SERVICES_LIMIT", "0")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.App.RequestTimeout)
	assert.Equal(t, 30, cfg.Stats.DefaultWindowDays)
	assert.Equal(t, 5, cfg.Stats.TopServicesLimit)
}

func TestLoadConfig_TimeZoneLoadsLocation(t *testing.T) {
	t.Setenv("DB_TIMEZONE", "America/Bogota")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	require.NotNil(t, cfg.DB.Location)
	assert.Equal(t, "America/Bogota", cfg.DB.Location.String())
}

func TestLoadConfig_UnknownTimeZoneFails(t *testing.T) {
	t.Setenv("DB_TIMEZONE", "Mars/Olympus_Mons")

	_, err := LoadConfig(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_TIMEZONE")
}
