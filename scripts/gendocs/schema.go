package main

import (
	"fmt"
	"log"
	"os"

	clicfg "github.com/leapstack-labs/leapflow/internal/cli/config"
	"github.com/leapstack-labs/leapflow/internal/config"
)

// generateSchemaDocs generates the configuration reference.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writePage(outDir, "configuration.md", configurationPage()); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}

// ConfigField represents a configuration key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Flag        string
	Description string
	Category    string // "cli" or "server"
}

// getConfigSchema returns the configuration keys. Defaults are read from the
// config packages so the reference cannot drift from the code.
func getConfigSchema() []ConfigField {
	server := config.DefaultServerConfig()
	return []ConfigField{
		{Name: "output", Type: "string", Default: clicfg.DefaultOutput, Flag: "--output", Description: "Output format: auto, text, markdown, json", Category: "cli"},
		{Name: "verbose", Type: "bool", Default: "false", Flag: "--verbose", Description: "Log at debug level", Category: "cli"},
		{Name: "log_level", Type: "string", Default: clicfg.DefaultLogLevel, Flag: "--log-level", Description: "Log level: debug, info, warn, error", Category: "cli"},
		{Name: "log_format", Type: "string", Default: clicfg.DefaultLogFormat, Flag: "--log-format", Description: "Log format: text, json", Category: "cli"},

		{Name: "server.host", Type: "string", Default: server.Host, Flag: "--host", Description: "Interface to bind; empty binds all interfaces", Category: "server"},
		{Name: "server.port", Type: "int", Default: fmt.Sprint(server.Port), Flag: "--port", Description: "Port to listen on", Category: "server"},
		{Name: "server.read_header_timeout", Type: "duration", Default: server.ReadHeaderTimeout.String(), Description: "Time allowed to read request headers", Category: "server"},
		{Name: "server.shutdown_timeout", Type: "duration", Default: server.ShutdownTimeout.String(), Description: "Grace period for in-flight requests on shutdown", Category: "server"},
		{Name: "server.max_body_bytes", Type: "int", Default: fmt.Sprint(server.MaxBodyBytes), Flag: "--max-body-bytes", Description: "Largest accepted request body", Category: "server"},
		{Name: "server.allowed_origins", Type: "list", Default: fmt.Sprint(server.AllowedOrigins), Flag: "--allowed-origin", Description: "Editor origins allowed by CORS", Category: "server"},
	}
}

func configRows(category string) [][]string {
	var rows [][]string
	for _, f := range getConfigSchema() {
		if f.Category != category {
			continue
		}
		defVal, flagName := f.Default, f.Flag
		if defVal == "" {
			defVal = "-"
		}
		if flagName == "" {
			flagName = "-"
		} else {
			flagName = InlineCode(flagName)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), flagName, f.Description})
	}
	return rows
}

func configurationPage() *MarkdownWriter {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "leapflow configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("leapflow reads %s (or %s) from the working directory, or the file given with `--config`. "+
		"Values are layered: defaults, then the config file, then `%s` environment variables, then command-line flags.",
		InlineCode(clicfg.ConfigFileNames[0]), InlineCode(clicfg.ConfigFileNames[1]), clicfg.EnvPrefix))

	headers := []string{"Key", "Type", "Default", "Flag", "Description"}

	w.Header(2, "CLI Settings")
	w.Table(headers, configRows("cli"))

	w.Header(2, "Server Settings")
	w.Paragraph("Used by `leapflow serve`. Durations accept Go syntax such as `5s` or `1m30s`.")
	w.Table(headers, configRows("server"))

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# leapflow.yaml
output: auto
log_level: info
log_format: text

server:
  host: ""
  port: 8000
  read_header_timeout: 10s
  shutdown_timeout: 5s
  max_body_bytes: 4194304
  allowed_origins:
    - http://localhost:3000`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Nested keys use a double underscore. Lists are comma-separated:")
	w.CodeBlock("bash", `LEAPFLOW_SERVER__PORT=9000 \
LEAPFLOW_SERVER__ALLOWED_ORIGINS=http://localhost:3000,https://editor.example.com \
leapflow serve`)

	return w
}
