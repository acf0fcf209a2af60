package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 0.85, cfg.Scoring.FuzzyThreshold)
	assert.Equal(t, 50, cfg.Scoring.ParallelThreshold)
	assert.Equal(t, 30*24*time.Hour, cfg.Ranking.RecencyWindow)
	assert.Equal(t, 5, cfg.Gaps.DefaultTopN)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Empty(t, cfg.Cache.RedisURL)
	assert.Empty(t, cfg.Database.URL)
	assert.True(t, cfg.RateLimit.Enabled)
}

// defaultConfig decodes the registered defaults without file or environment.
func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.NoError(t, cfg.Validate())
	return &cfg
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
server:
  port: 9090
  write_timeout: 1m
logging:
  level: debug
  format: console
scoring:
  fuzzy_threshold: 0.9
  workers: 2
ranking:
  recency_window: 168h
cache:
  redis_url: redis://localhost:6379/0
`
	path := filepath.Join(t.TempDir(), "skillmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 0.9, cfg.Scoring.FuzzyThreshold)
	assert.Equal(t, 2, cfg.Scoring.Workers)
	assert.Equal(t, 50, cfg.Scoring.ParallelThreshold)
	assert.Equal(t, 7*24*time.Hour, cfg.Ranking.RecencyWindow)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SKILLMATCH_SERVER_PORT", "7070")
	t.Setenv("SKILLMATCH_SCORING_FUZZY_THRESHOLD", "0.75")
	t.Setenv("SKILLMATCH_DATABASE_URL", "postgres://localhost/skillmatch")
	t.Setenv("SKILLMATCH_RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 0.75, cfg.Scoring.FuzzyThreshold)
	assert.Equal(t, "postgres://localhost/skillmatch", cfg.Database.URL)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("SKILLMATCH_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/skillmatch.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("SKILLMATCH_SCORING_FUZZY_THRESHOLD", "1.5")

	cfg, err := Load("")
	assert.Nil(t, cfg)
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "scoring.fuzzy_threshold")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"zero threshold", func(c *Config) { c.Scoring.FuzzyThreshold = 0 }, "scoring.fuzzy_threshold"},
		{"no workers", func(c *Config) { c.Scoring.Workers = 0 }, "scoring.workers"},
		{"negative window", func(c *Config) { c.Ranking.RecencyWindow = -time.Hour }, "ranking.recency_window"},
		{"zero top n", func(c *Config) { c.Gaps.DefaultTopN = 0 }, "gaps.default_top_n"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "rate_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Problems, 1)
			assert.Contains(t, ve.Problems[0], tt.problem)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Server.Port = -1
	cfg.Gaps.DefaultTopN = -1

	var ve *ValidationError
	require.ErrorAs(t, cfg.Validate(), &ve)
	assert.Len(t, ve.Problems, 2)
}

func TestValidate_DisabledRateLimitIgnoresValues(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.Burst = 0
	assert.NoError(t, cfg.Validate())
}
