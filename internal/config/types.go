// Package config holds configuration types shared by the CLI and the HTTP server.
package config

import "time"

// ServerConfig configures the pipeline submission HTTP service.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
	AllowedOrigins    []string      `koanf:"allowed_origins"`
}
