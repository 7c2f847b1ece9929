package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_ADDR", "DB_DSN", "DB_TIMEOUT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "MAX_BODY_BYTES", "ENABLE_HSTS", "SHUTDOWN_TIMEOUT",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Addr:               ":8000",
		DatabaseDSN:        "sqlite://books.db",
		DBTimeout:          5 * time.Second,
		LogLevel:           "info",
		CORSAllowedOrigins: []string{"*"},
		RateLimitRPS:       0,
		RateLimitBurst:     20,
		MaxBodyBytes:       1048576,
		EnableHSTS:         false,
		ShutdownTimeout:    20 * time.Second,
	}, cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DB_DSN", "postgres://u:p@db:5432/books")
	t.Setenv("DB_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000;https://books.example.com")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("ENABLE_HSTS", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://u:p@db:5432/books", cfg.DatabaseDSN)
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://books.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.EnableHSTS)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DB_TIMEOUT", "soon"},
		{"DB_TIMEOUT", "0s"},
		{"RATE_LIMIT_RPS", "-1"},
		{"MAX_BODY_BYTES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ADDR=:7000\nLOG_LEVEL=debug\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("APP_ADDR", ":9000")
	t.Cleanup(func() { _ = os.Unsetenv("LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}
