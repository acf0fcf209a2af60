// Package config loads service configuration from an optional YAML file and
// SKILLMATCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SKILLMATCH_SERVER_PORT.
const EnvPrefix = "SKILLMATCH"

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "skillmatch.yaml"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	Gaps      GapsConfig      `mapstructure:"gaps"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// AllowedOrigins feeds the CORS middleware; "*" allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ScoringConfig struct {
	FuzzyThreshold      float64 `mapstructure:"fuzzy_threshold"`
	ParallelThreshold   int     `mapstructure:"parallel_threshold"`
	Workers             int     `mapstructure:"workers"`
	SimilarityCacheSize int     `mapstructure:"similarity_cache_size"`
}

type RankingConfig struct {
	// RecencyWindow of 0 disables the recency boost.
	RecencyWindow time.Duration `mapstructure:"recency_window"`
}

type GapsConfig struct {
	DefaultTopN int `mapstructure:"default_top_n"`
}

type CatalogConfig struct {
	// Path replaces the embedded catalog when set.
	Path string `mapstructure:"path"`
}

type CacheConfig struct {
	// RedisURL enables the response cache when set.
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type DatabaseConfig struct {
	// URL enables loading stored postings by id when set.
	URL string `mapstructure:"url"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
	// Whitelist holds client addresses that are never limited.
	Whitelist []string `mapstructure:"whitelist"`
}

// Load reads path (or DefaultFile when path is empty and the file exists),
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("scoring.fuzzy_threshold", 0.85)
	v.SetDefault("scoring.parallel_threshold", 50)
	v.SetDefault("scoring.workers", 8)
	v.SetDefault("scoring.similarity_cache_size", 4096)

	v.SetDefault("ranking.recency_window", 30*24*time.Hour)

	v.SetDefault("gaps.default_top_n", 5)

	v.SetDefault("catalog.path", "")

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("database.url", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.whitelist", []string{})
}

// Validate checks value ranges. All failures are reported together.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	if c.Scoring.FuzzyThreshold <= 0 || c.Scoring.FuzzyThreshold > 1 {
		problems = append(problems, fmt.Sprintf("scoring.fuzzy_threshold must be in (0, 1], got %v", c.Scoring.FuzzyThreshold))
	}
	if c.Scoring.ParallelThreshold < 0 {
		problems = append(problems, "scoring.parallel_threshold must be non-negative")
	}
	if c.Scoring.Workers <= 0 {
		problems = append(problems, "scoring.workers must be positive")
	}
	if c.Scoring.SimilarityCacheSize < 0 {
		problems = append(problems, "scoring.similarity_cache_size must be non-negative")
	}
	if c.Ranking.RecencyWindow < 0 {
		problems = append(problems, "ranking.recency_window must be non-negative")
	}
	if c.Gaps.DefaultTopN <= 0 {
		problems = append(problems, "gaps.default_top_n must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit.requests_per_second and rate_limit.burst must be positive when enabled")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
