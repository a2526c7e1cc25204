package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Default server configuration values.
const (
	DefaultHost              = ""
	DefaultPort              = 8000
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultMaxBodyBytes      = 4 << 20 // 4 MiB
	DefaultAllowedOrigin     = "http://localhost:3000"
)

// DefaultServerConfig returns a ServerConfig with every default applied.
func DefaultServerConfig() ServerConfig {
	c := ServerConfig{}
	ApplyServerDefaults(&c)
	return c
}

// ApplyServerDefaults fills zero-valued fields with their defaults.
func ApplyServerDefaults(c *ServerConfig) {
	if c == nil {
		return
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.AllowedOrigins == nil {
		c.AllowedOrigins = []string{DefaultAllowedOrigin}
	}
}

// ValidateServer checks a ServerConfig after defaults have been applied.
func ValidateServer(c *ServerConfig) error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Port)
	}
	if c.ReadHeaderTimeout < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("server max_body_bytes must not be negative")
	}
	return nil
}

// Addr returns the listen address, e.g. ":8000" or "127.0.0.1:8000".
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
