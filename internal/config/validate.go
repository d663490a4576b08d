package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation of the gateway and log
// sections. It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Gateway.validate(); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// ValidateStub validates the reference service section. Only the stub
// binary needs it.
func (c *Config) ValidateStub() error {
	s := c.Stub
	if len(s.JWTSecret) < 32 {
		return fmt.Errorf("stub.jwt_secret must be at least 32 characters (got %d)", len(s.JWTSecret))
	}
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("stub.port must be in 1..65535 (got %d)", s.Port)
	}
	if s.TokenTTL <= 0 {
		return fmt.Errorf("stub.token_ttl must be > 0 (got %s)", s.TokenTTL)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("stub.rate_limit must be >= 0 (got %d)", s.RateLimit)
	}
	if err := checkPrefix(s.RoutesPrefix); err != nil {
		return fmt.Errorf("stub.routes_prefix: %w", err)
	}
	return nil
}

func (g *GatewayConfig) validate() error {
	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be an http(s) URL (got %q)", g.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host (got %q)", g.BaseURL)
	}
	if err := checkPrefix(g.RoutesPrefix); err != nil {
		return fmt.Errorf("routes_prefix: %w", err)
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", g.Timeout)
	}
	if g.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0 (got %v)", g.RateLimit)
	}
	if g.RateLimit > 0 && g.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be >= 1 when rate_limit is set (got %d)", g.RateBurst)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func checkPrefix(p string) error {
	if p != "" && !strings.HasPrefix(p, "/") {
		return fmt.Errorf("must start with / (got %q)", p)
	}
	return nil
}
