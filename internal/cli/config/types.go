// Package config provides configuration management for the leapflow CLI.
//
// Server settings are shared with the HTTP server and re-exported here via a
// type alias so commands can use config.ServerConfig directly.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapflow/internal/config"
)

// ServerConfig is an alias for the shared server configuration.
type ServerConfig = sharedcfg.ServerConfig

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	LogLevel     string       `koanf:"log_level"`
	LogFormat    string       `koanf:"log_format"`
	Server       ServerConfig `koanf:"server"`
}

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	EnvPrefix        = "LEAPFLOW_"
)

// ConfigFileNames lists the config files searched for in the working directory.
var ConfigFileNames = []string{"leapflow.yaml", "leapflow.yml"}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Server:       sharedcfg.DefaultServerConfig(),
	}
}
