package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, "truncate", cfg.Calc.TextPolicy)
	assert.Zero(t, cfg.Calc.MaxRows)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PPHC_SERVER_PORT", ":9090")
	t.Setenv("PORT", "3000")
	t.Setenv("PPHC_LOG_FORMAT", "json")
	t.Setenv("PPHC_CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("PPHC_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("PPHC_CALC_TEXT_POLICY", "reject")
	t.Setenv("PPHC_CALC_MAX_ROWS", "4096")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, "reject", cfg.Calc.TextPolicy)
	assert.Equal(t, 4096, cfg.Calc.MaxRows)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "5000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pphc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\ncalc:\n  text_policy: unbounded\n"), 0o600))
	t.Setenv("PPHC_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "unbounded", cfg.Calc.TextPolicy)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("text policy", func(t *testing.T) {
		t.Setenv("PPHC_CALC_TEXT_POLICY", "shout")
		_, err := Load()
		assert.ErrorContains(t, err, "calc.text_policy")
	})
	t.Run("max rows", func(t *testing.T) {
		t.Setenv("PPHC_CALC_MAX_ROWS", "-1")
		_, err := Load()
		assert.ErrorContains(t, err, "calc.max_rows")
	})
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("PPHC_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.ErrorContains(t, err, "reading config file")
	})
}
