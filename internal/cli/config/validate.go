package config

import (
	"fmt"
	"slices"
	"strings"

	sharedcfg "github.com/leapstack-labs/leapflow/internal/config"
)

var (
	validOutputs    = []string{"auto", "text", "markdown", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, strings.ToLower(c.OutputFormat)) {
		return fmt.Errorf("invalid output format %q (expected one of %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q (expected one of %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log_format %q (expected one of %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if err := sharedcfg.ValidateServer(&c.Server); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	return nil
}
