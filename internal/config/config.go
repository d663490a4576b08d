package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Stub    StubConfig    `yaml:"stub"`
	Log     LogConfig     `yaml:"log"`
}

// GatewayConfig holds the client-side settings used to reach the
// communities service.
type GatewayConfig struct {
	BaseURL      string        `yaml:"base_url"      env:"GATEWAY_BASE_URL"      env-default:"http://localhost:8080"`
	RoutesPrefix string        `yaml:"routes_prefix" env:"GATEWAY_ROUTES_PREFIX" env-default:"/routes"`
	Token        string        `yaml:"token"         env:"GATEWAY_TOKEN"`
	Timeout      time.Duration `yaml:"timeout"       env:"GATEWAY_TIMEOUT"       env-default:"15s"`
	UserAgent    string        `yaml:"user_agent"    env:"GATEWAY_USER_AGENT"    env-default:"forumctl"`
	RateLimit    float64       `yaml:"rate_limit"    env:"GATEWAY_RATE_LIMIT"    env-default:"0"`
	RateBurst    int           `yaml:"rate_burst"    env:"GATEWAY_RATE_BURST"    env-default:"1"`
}

// StubConfig holds settings of the in-memory reference service.
type StubConfig struct {
	Host            string        `yaml:"host"             env:"STUB_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"STUB_PORT"             env-default:"8080"`
	RoutesPrefix    string        `yaml:"routes_prefix"    env:"STUB_ROUTES_PREFIX"    env-default:"/routes"`
	JWTSecret       string        `yaml:"jwt_secret"       env:"STUB_JWT_SECRET"`
	JWTIssuer       string        `yaml:"jwt_issuer"       env:"STUB_JWT_ISSUER"       env-default:"forumstub"`
	TokenTTL        time.Duration `yaml:"token_ttl"        env:"STUB_TOKEN_TTL"        env-default:"24h"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"STUB_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"STUB_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"STUB_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimit       int           `yaml:"rate_limit"       env:"STUB_RATE_LIMIT"       env-default:"0"`
	CORS            CORSConfig    `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
