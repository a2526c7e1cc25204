package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	sharedcfg "github.com/leapstack-labs/leapflow/internal/config"
	"github.com/spf13/pflag"
)

// flagKeys maps CLI flag names onto config keys where the two differ.
var flagKeys = map[string]string{
	"port":                "server.port",
	"host":                "server.host",
	"allowed-origin":      "server.allowed_origins",
	"max-body-bytes":      "server.max_body_bytes",
	"shutdown-timeout":    "server.shutdown_timeout",
	"read-header-timeout": "server.read_header_timeout",
}

// Loader resolves a Config from, in increasing precedence: built-in defaults,
// a leapflow.yaml file, LEAPFLOW_ environment variables and flags the user
// set explicitly.
type Loader struct {
	// File is an explicit config file path. When empty, the working
	// directory is searched for one of ConfigFileNames.
	File string
	// Flags is the command's flag set. Nil skips the flag layer.
	Flags *pflag.FlagSet

	used string
}

// LoadConfig is shorthand for a Loader over cfgFile and flags.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	l := &Loader{File: cfgFile, Flags: flags}
	return l.Load()
}

// FileUsed returns the config file read by the last Load, if any.
func (l *Loader) FileUsed() string {
	return l.used
}

// Load reads every layer into a fresh koanf instance and decodes the result.
// The returned config has server defaults applied and has been validated.
func (l *Loader) Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	l.used = discover(l.File)
	if l.used != "" {
		if err := k.Load(file.Provider(l.used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", l.used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if l.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(l.Flags, ".", k, setFlags(l.Flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	sharedcfg.ApplyServerDefaults(&cfg.Server)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"verbose":                    d.Verbose,
		"output":                     d.OutputFormat,
		"log_level":                  d.LogLevel,
		"log_format":                 d.LogFormat,
		"server.host":                d.Server.Host,
		"server.port":                d.Server.Port,
		"server.read_header_timeout": d.Server.ReadHeaderTimeout.String(),
		"server.shutdown_timeout":    d.Server.ShutdownTimeout.String(),
		"server.max_body_bytes":      d.Server.MaxBodyBytes,
		"server.allowed_origins":     d.Server.AllowedOrigins,
	}
}

// discover returns explicit, or the first of ConfigFileNames present in the
// working directory.
func discover(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey turns LEAPFLOW_SERVER__ALLOWED_ORIGINS into server.allowed_origins.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// setFlags returns a posflag callback that keeps only flags changed on the
// command line, renamed to their config keys.
func setFlags(fs *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		return key, posflag.FlagVal(fs, f)
	}
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

type configKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored by WithConfig, or the defaults when
// none was stored (commands executed directly in tests).
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return Default()
}
