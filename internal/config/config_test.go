package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FooleanBool/MBTools/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8085", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.Server.CORSOrigins)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 120, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.RateLimitEnabled())
}

func TestLoad_File(t *testing.T) {
	os.Clearenv()

	path := writeConfig(t, `
server:
  addr: ":9000"
  cors_origins:
    - "https://calc.example.com"
redis:
  url: "redis://localhost:6379/0"
rate_limit:
  requests_per_minute: 30
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://calc.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 30, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.RateLimitEnabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	os.Clearenv()
	path := writeConfig(t, "server:\n  addr: \":9000\"\nlog:\n  level: debug\n")

	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example ")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_BadIntegerEnvKeepsDefault(t *testing.T) {
	os.Clearenv()
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.RateLimit.RequestsPerMinute)
}

func TestLoad_Errors(t *testing.T) {
	os.Clearenv()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = config.Load(writeConfig(t, "server: [not, a, map"))
	assert.ErrorContains(t, err, "failed to parse config file")

	_, err = config.Load(writeConfig(t, "log:\n  level: chatty\n"))
	assert.ErrorContains(t, err, "invalid log level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{"Defaults are valid", func(c *config.Config) {}, false},
		{"Empty address", func(c *config.Config) { c.Server.Addr = "" }, true},
		{"Negative rate limit", func(c *config.Config) { c.RateLimit.RequestsPerMinute = -1 }, true},
		{"Unknown log level", func(c *config.Config) { c.Log.Level = "loud" }, true},
		{"Unknown log format", func(c *config.Config) { c.Log.Format = "xml" }, true},
		{"JSON log format", func(c *config.Config) { c.Log.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateLimitEnabled(t *testing.T) {
	cfg := config.Default()
	assert.False(t, cfg.RateLimitEnabled())

	cfg.Redis.URL = "redis://localhost:6379/0"
	assert.True(t, cfg.RateLimitEnabled())

	cfg.RateLimit.RequestsPerMinute = 0
	assert.False(t, cfg.RateLimitEnabled())
}

func TestConfigureLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := logrus.New()
	require.NoError(t, cfg.ConfigureLogger(logger))

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
