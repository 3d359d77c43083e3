package config

import "time"

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// RateLimit throttles inbound requests per second with a burst
	// allowance; zero disables throttling.
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds the request throttle settings
type RateLimitConfig struct {
	Requests float64 `mapstructure:"requests" validate:"min=0"`
	Burst    int     `mapstructure:"burst" validate:"min=0"`
}
