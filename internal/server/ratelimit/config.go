package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string // Endpoint path pattern (supports prefix matching)
	Method string // HTTP method (GET, POST, etc.)
	// RequestsPerSecond is the refill rate; 0 means unlimited.
	RequestsPerSecond float64
	Burst             int // Burst capacity (defaults to 1 if 0)
}

// Settings are the operator-facing knobs, usually taken from the service config.
type Settings struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
	Whitelist         []string
}

// NewConfig builds a Config from settings. Endpoint limits scale with the
// default rate.
func NewConfig(s Settings) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:                  true,
		DefaultRequestsPerSecond: s.RequestsPerSecond,
		DefaultBurst:             s.Burst,
		CleanupInterval:          5 * time.Minute,
		IdleTimeout:              time.Hour,
		Whitelist:                parseIPList(s.Whitelist),
		EndpointConfigs:          DefaultEndpointConfigs(s.RequestsPerSecond, s.Burst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
func DefaultEndpointConfigs(rps float64, burst int) []EndpointConfig {
	return []EndpointConfig{
		// Analyze scores and aggregates in one call; it gets half the budget.
		{Path: "/v1/analyze", Method: "POST", RequestsPerSecond: rps / 2, Burst: max(1, burst/2)},
		{Path: "/v1/jobs/score", Method: "POST", RequestsPerSecond: rps, Burst: burst},
		{Path: "/v1/skill-gaps", Method: "POST", RequestsPerSecond: rps, Burst: burst},

		// Health and metrics are unlimited, handled by special case in matcher
	}
}

// parseIPList turns a list of addresses into a set.
func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
